// Package rules implements the atomic validation predicates and the
// boolean combinators that compose them. A Validator is a closed tagged
// variant: every rule a schema can express is one of the kinds below,
// evaluated by exhaustive switch. Validators are immutable and pure;
// malformed data makes a predicate return false, never panic.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
)

// Kind enumerates the closed set of validator variants.
type Kind int

const (
	KindRange Kind = iota
	KindSet
	KindPattern
	KindDecimal
	KindInteger
	KindLength
	KindDate
	KindMode
	KindAnd
	KindOr
)

// Validator is one declarative rule, parameterised by kind. Construct
// through the exported constructors; invalid parameters (a bad regex, an
// inverted range, an unusable date layout) are rejected there, so a
// built Validator can always be evaluated safely.
type Validator struct {
	kind     Kind
	message  string
	min, max float64
	allowed  map[string]struct{}
	re       *regexp.Regexp
	lengths  map[int]struct{}
	layout   string
	children []Validator
}

// Range builds an inclusive numeric range check. Values that do not
// coerce to a number fail the check rather than erroring.
func Range(min, max float64) (Validator, error) {
	if min > max {
		return Validator{}, core.NewConfigError(
			fmt.Sprintf("range [%v, %v]", min, max), core.ErrBadRange)
	}
	return Validator{
		kind:    KindRange,
		min:     min,
		max:     max,
		message: fmt.Sprintf("value must be a number between %v and %v", min, max),
	}, nil
}

// OneOf builds an exact string membership check against the allowed set.
func OneOf(values ...string) Validator {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	preview := make([]string, len(values))
	copy(preview, values)
	sort.Strings(preview)
	if len(preview) > 6 {
		preview = append(preview[:6], "...")
	}
	return Validator{
		kind:    KindSet,
		allowed: allowed,
		message: fmt.Sprintf("value must be one of: %s", strings.Join(preview, ", ")),
	}
}

// Pattern builds an anchored full-match regular expression check. The
// expression is wrapped in \A(?:...)\z so a loose pattern cannot match a
// substring of an otherwise invalid value.
func Pattern(expr string) (Validator, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)\z`)
	if err != nil {
		return Validator{}, core.NewConfigError(expr, core.ErrBadPattern)
	}
	return Validator{
		kind:    KindPattern,
		re:      re,
		message: fmt.Sprintf("value must match pattern %s", expr),
	}, nil
}

// Decimal builds an arbitrary-precision decimal check.
func Decimal() Validator {
	return Validator{kind: KindDecimal, message: "value must be a decimal number"}
}

// Integer builds a base-10 integer check (optional sign allowed).
func Integer() Validator {
	return Validator{kind: KindInteger, message: "value must be an integer"}
}

// Length builds a string length check against a set of allowed lengths.
func Length(lengths ...int) Validator {
	set := make(map[int]struct{}, len(lengths))
	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		set[n] = struct{}{}
		parts[i] = fmt.Sprintf("%d", n)
	}
	return Validator{
		kind:    KindLength,
		lengths: set,
		message: fmt.Sprintf("value length must be one of {%s}", strings.Join(parts, ", ")),
	}
}

// Date builds an exact date-format check for the given Go time layout.
// The layout is verified by a format/parse round trip so an unusable
// layout fails at construction, not during validation.
func Date(layout string) (Validator, error) {
	ref := time.Date(2021, 6, 15, 10, 30, 45, 123456789, time.UTC)
	if _, err := time.Parse(layout, ref.Format(layout)); err != nil {
		return Validator{}, core.NewConfigError(layout, core.ErrBadDateLayout)
	}
	return Validator{
		kind:    KindDate,
		layout:  layout,
		message: fmt.Sprintf("value must be a timestamp in format %s", layout),
	}, nil
}

// ModeEquality builds the series check that every row equals the
// column's most frequent value.
func ModeEquality() Validator {
	return Validator{
		kind:    KindMode,
		message: "value differs from the most frequent value in its group",
	}
}

// And passes only when every child passes.
func And(children ...Validator) Validator {
	msgs := make([]string, len(children))
	for i, c := range children {
		msgs[i] = c.message
	}
	return Validator{
		kind:     KindAnd,
		children: children,
		message:  strings.Join(msgs, " and "),
	}
}

// Or passes when any child passes.
func Or(children ...Validator) Validator {
	msgs := make([]string, len(children))
	for i, c := range children {
		msgs[i] = c.message
	}
	return Validator{
		kind:     KindOr,
		children: children,
		message:  strings.Join(msgs, ", or "),
	}
}

// OrFill wraps a validator so the not-measured sentinel passes the
// column's constraint unconditionally.
func OrFill(v Validator) Validator {
	fill := Must(Pattern(regexp.QuoteMeta(sample.FillValue)))
	return Or(v, fill).WithMessage(
		v.message + ", or the fill value " + sample.FillValue)
}

// Must panics on a construction error. For static schema literals and
// tests; runtime-built schemas should propagate the error instead.
func Must(v Validator, err error) Validator {
	if err != nil {
		panic(err)
	}
	return v
}

// Kind returns the variant discriminator.
func (v Validator) Kind() Kind { return v.kind }

// Message returns the failure message attached to findings.
func (v Validator) Message() string { return v.message }

// WithMessage returns a copy of the validator carrying a custom failure
// message.
func (v Validator) WithMessage(msg string) Validator {
	v.message = msg
	return v
}

// Series reports whether the validator (or any nested child) needs the
// whole column rather than a single cell.
func (v Validator) Series() bool {
	switch v.kind {
	case KindMode:
		return true
	case KindAnd, KindOr:
		for _, c := range v.children {
			if c.Series() {
				return true
			}
		}
	}
	return false
}

// Check evaluates the validator against a single cell. Series-only
// variants pass trivially here; use CheckSeries for full-column
// semantics.
func (v Validator) Check(c sample.Cell) bool {
	switch v.kind {
	case KindRange:
		f, ok := c.Float()
		return ok && f >= v.min && f <= v.max
	case KindSet:
		_, ok := v.allowed[c.Raw()]
		return ok
	case KindPattern:
		return v.re.MatchString(c.Raw())
	case KindDecimal:
		return c.Decimal()
	case KindInteger:
		return c.Integer()
	case KindLength:
		_, ok := v.lengths[len([]rune(c.Raw()))]
		return ok
	case KindDate:
		_, err := time.Parse(v.layout, c.Raw())
		return err == nil
	case KindMode:
		return true
	case KindAnd:
		for _, child := range v.children {
			if !child.Check(c) {
				return false
			}
		}
		return true
	case KindOr:
		for _, child := range v.children {
			if child.Check(c) {
				return true
			}
		}
		return len(v.children) == 0
	}
	return false
}

// CheckSeries evaluates the validator across an ordered column, one
// pass/fail per row. Element validators map Check over the cells;
// combinators combine their children row-wise, so a series child inside
// an Or keeps full-column semantics.
func (v Validator) CheckSeries(cells []sample.Cell) []bool {
	switch v.kind {
	case KindMode:
		out := make([]bool, len(cells))
		mode, ok := Mode(cells)
		for i, c := range cells {
			out[i] = !ok || c.Equal(mode)
		}
		return out
	case KindAnd:
		out := allTrue(len(cells))
		for _, child := range v.children {
			for i, pass := range child.CheckSeries(cells) {
				out[i] = out[i] && pass
			}
		}
		return out
	case KindOr:
		if len(v.children) == 0 {
			return allTrue(len(cells))
		}
		out := make([]bool, len(cells))
		for _, child := range v.children {
			for i, pass := range child.CheckSeries(cells) {
				out[i] = out[i] || pass
			}
		}
		return out
	default:
		out := make([]bool, len(cells))
		for i, c := range cells {
			out[i] = v.Check(c)
		}
		return out
	}
}

// Mode returns the most frequent cell in the sequence. Ties break to the
// value whose first occurrence has the lowest row index, which keeps the
// canonical choice deterministic across runs. ok is false for an empty
// sequence.
func Mode(cells []sample.Cell) (mode sample.Cell, ok bool) {
	type entry struct {
		count int
		first int
	}
	counts := make(map[string]*entry, len(cells))
	keys := make(map[string]sample.Cell, len(cells))
	for i, c := range cells {
		key := fmt.Sprintf("%d\x00%s", c.Type(), c.Raw())
		if e, seen := counts[key]; seen {
			e.count++
		} else {
			counts[key] = &entry{count: 1, first: i}
			keys[key] = c
		}
	}
	best := entry{count: 0, first: len(cells)}
	for key, e := range counts {
		if e.count > best.count || (e.count == best.count && e.first < best.first) {
			best = *e
			mode = keys[key]
			ok = true
		}
	}
	return mode, ok
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
