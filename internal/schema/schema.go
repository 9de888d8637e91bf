// Package schema binds column names to validator lists and walks tables
// against them. Validation never short-circuits: every independent
// failure across the whole table lands in one ordered finding list.
package schema

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
	"github.com/reedan88/ooicgsn-data-tools/domain/qc"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
	"github.com/reedan88/ooicgsn-data-tools/internal/rules"
)

// ColumnRule pairs a column name with the ordered validators applied to
// every cell of that column. Validators are independent: one cell can
// fail several of them and produce several findings.
type ColumnRule struct {
	Name       string
	Validators []rules.Validator
}

// Schema is an ordered, immutable collection of column rules. Build it
// once from static configuration and reuse it across validate calls; it
// holds no per-validation state.
type Schema struct {
	rules []ColumnRule
}

// New builds a schema, rejecting rules with no validators at
// construction time.
func New(cols ...ColumnRule) (*Schema, error) {
	for _, cr := range cols {
		if len(cr.Validators) == 0 {
			return nil, core.NewConfigError(cr.Name, core.ErrNoValidators)
		}
	}
	return &Schema{rules: cols}, nil
}

// Rules returns the column rules in declaration order.
func (s *Schema) Rules() []ColumnRule { return s.rules }

// Validate walks the table against every column rule. Findings are
// ordered by schema declaration order, then row index, then validator
// order within the rule. Columns present in the table but not declared
// here are ignored; the header aligner reports those separately.
func (s *Schema) Validate(t *sample.Table) []qc.Error {
	perRule := make([][]qc.Error, len(s.rules))
	for i := range s.rules {
		perRule[i] = s.validateRule(i, t)
	}
	return flatten(perRule)
}

// ValidateConcurrent validates independent columns in parallel. The
// finding list is assembled per-rule and flattened in declaration order,
// so output is observably identical to Validate.
func (s *Schema) ValidateConcurrent(ctx context.Context, t *sample.Table, workers int) ([]qc.Error, error) {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	perRule := make([][]qc.Error, len(s.rules))
	for i := range s.rules {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perRule[idx] = s.validateRule(idx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flatten(perRule), nil
}

// validateRule applies one column rule. A declared column missing from
// the table yields a structural finding and the rest of the schema
// still runs.
func (s *Schema) validateRule(i int, t *sample.Table) []qc.Error {
	rule := s.rules[i]
	col, ok := t.Column(rule.Name)
	if !ok {
		return []qc.Error{qc.NewStructuralError(qc.KindMissingColumn, rule.Name,
			"column declared in schema but absent from table")}
	}

	// Evaluate each validator over the full column first so series
	// validators see every row, then emit findings in row order.
	results := make([][]bool, len(rule.Validators))
	for vi, v := range rule.Validators {
		results[vi] = v.CheckSeries(col.Cells)
	}

	var out []qc.Error
	for row := range col.Cells {
		for vi, v := range rule.Validators {
			if !results[vi][row] {
				out = append(out, qc.NewCellError(rule.Name, row, col.Cells[row], v.Message()))
			}
		}
	}
	return out
}

func flatten(perRule [][]qc.Error) []qc.Error {
	var out []qc.Error
	for _, errs := range perRule {
		out = append(out, errs...)
	}
	return out
}
