package schema

import (
	"fmt"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
	"github.com/reedan88/ooicgsn-data-tools/domain/qc"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
	"github.com/reedan88/ooicgsn-data-tools/internal/rules"
)

// GroupedSchema re-runs mode-equality validation over row partitions.
// Rows are split by the outer key (cruise), then by the inner key
// (station) within each outer partition; every designated metadata
// column must hold one constant value across each leaf group.
type GroupedSchema struct {
	outer   string
	inner   string
	columns []string
}

// NewGrouped builds a grouped schema over the given partition keys and
// metadata columns.
func NewGrouped(outerKey, innerKey string, metadataColumns ...string) (*GroupedSchema, error) {
	if len(metadataColumns) == 0 {
		return nil, core.NewConfigError("grouped schema", core.ErrNoValidators)
	}
	return &GroupedSchema{outer: outerKey, inner: innerKey, columns: metadataColumns}, nil
}

// group is one leaf partition: its key values and the original table
// row indices it covers.
type group struct {
	keys []string
	rows []int
}

// Validate partitions the table and checks every metadata column for
// group-wide consensus. Findings carry the group's key values and the
// original row index, so a report line is attributable to a specific
// cruise and station. Partition iteration follows first-seen order of
// the key values, independent of any sort.
func (g *GroupedSchema) Validate(t *sample.Table) []qc.Error {
	var out []qc.Error

	outerCol, ok := t.Column(g.outer)
	if !ok {
		return append(out, qc.NewStructuralError(qc.KindMissingColumn, g.outer,
			"grouping column absent from table"))
	}
	innerCol, ok := t.Column(g.inner)
	if !ok {
		return append(out, qc.NewStructuralError(qc.KindMissingColumn, g.inner,
			"grouping column absent from table"))
	}

	// Report metadata columns missing from the table once, up front,
	// rather than once per group.
	columns := make([]string, 0, len(g.columns))
	for _, name := range g.columns {
		if _, ok := t.Column(name); !ok {
			out = append(out, qc.NewStructuralError(qc.KindMissingColumn, name,
				"column declared in schema but absent from table"))
			continue
		}
		columns = append(columns, name)
	}

	mode := rules.ModeEquality()
	for _, grp := range partition(outerCol.Cells, innerCol.Cells) {
		for _, name := range columns {
			col, _ := t.Column(name)
			cells := make([]sample.Cell, len(grp.rows))
			for i, row := range grp.rows {
				cells[i] = col.Cells[row]
			}
			pass := mode.CheckSeries(cells)
			consensus, _ := rules.Mode(cells)
			for i, ok := range pass {
				if ok {
					continue
				}
				out = append(out, qc.NewGroupError(grp.keys, name, grp.rows[i], cells[i],
					fmt.Sprintf("%s (expected %q)", mode.Message(), consensus.Raw())))
			}
		}
	}
	return out
}

// partition splits row indices into disjoint leaf groups keyed by the
// outer then inner cell values, both in first-seen order.
func partition(outer, inner []sample.Cell) []group {
	type innerMap struct {
		order []string
		rows  map[string][]int
	}
	outerOrder := make([]string, 0)
	outerGroups := make(map[string]*innerMap)

	for row := range outer {
		okey := outer[row].Raw()
		im, seen := outerGroups[okey]
		if !seen {
			im = &innerMap{rows: make(map[string][]int)}
			outerGroups[okey] = im
			outerOrder = append(outerOrder, okey)
		}
		ikey := inner[row].Raw()
		if _, seen := im.rows[ikey]; !seen {
			im.order = append(im.order, ikey)
		}
		im.rows[ikey] = append(im.rows[ikey], row)
	}

	var groups []group
	for _, okey := range outerOrder {
		im := outerGroups[okey]
		for _, ikey := range im.order {
			groups = append(groups, group{
				keys: []string{okey, ikey},
				rows: im.rows[ikey],
			})
		}
	}
	return groups
}
