package qc

import (
	"fmt"
	"strings"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
)

// Kind classifies a validation finding. Structural kinds (missing
// columns, header misalignment) are distinguishable from data-value
// failures so callers can filter on them.
type Kind string

const (
	// KindCell is a single value failing one validator.
	KindCell Kind = "cell"
	// KindGroup is a row disagreeing with its group's consensus value.
	KindGroup Kind = "group"
	// KindMissingColumn is a schema column absent from the table.
	KindMissingColumn Kind = "missing_column"
	// KindHeaderMisplaced is a known header in the wrong position.
	KindHeaderMisplaced Kind = "header_misplaced"
	// KindHeaderUnexpected is a header name the schema does not know.
	KindHeaderUnexpected Kind = "header_unexpected"
	// KindHeaderExtra is an out-of-schema column past the canonical length.
	KindHeaderExtra Kind = "header_extra"
	// KindHeaderMissing is a canonical header absent from the sheet.
	KindHeaderMissing Kind = "header_missing"
)

// Error is a single validation finding. It is an immutable value, not a
// Go error: invalid data is the expected, correctly reported case.
type Error struct {
	Kind    Kind        `json:"kind"`
	Column  string      `json:"column"`
	Row     int         `json:"row_index"` // -1 for structural findings
	Value   sample.Cell `json:"-"`
	Raw     string      `json:"value"`
	Message string      `json:"message"`
	// Group holds the partition key values (cruise, station) for
	// grouped findings; nil otherwise.
	Group []string `json:"group_keys,omitempty"`
}

// NewCellError builds a per-cell finding.
func NewCellError(column string, row int, value sample.Cell, message string) Error {
	return Error{Kind: KindCell, Column: column, Row: row, Value: value, Raw: value.Raw(), Message: message}
}

// NewGroupError builds a grouped consensus finding tagged with its
// partition keys.
func NewGroupError(group []string, column string, row int, value sample.Cell, message string) Error {
	return Error{Kind: KindGroup, Column: column, Row: row, Value: value, Raw: value.Raw(), Message: message, Group: group}
}

// NewStructuralError builds a header or missing-column finding.
func NewStructuralError(kind Kind, column string, message string) Error {
	return Error{Kind: kind, Column: column, Row: -1, Message: message}
}

// Structural reports whether the finding concerns table shape rather
// than a data value.
func (e Error) Structural() bool {
	switch e.Kind {
	case KindCell, KindGroup:
		return false
	default:
		return true
	}
}

// String renders the finding for logs and plain-text reports.
func (e Error) String() string {
	var b strings.Builder
	if len(e.Group) > 0 {
		fmt.Fprintf(&b, "[%s] ", strings.Join(e.Group, "/"))
	}
	if e.Structural() {
		fmt.Fprintf(&b, "%s: column %q: %s", e.Kind, e.Column, e.Message)
		return b.String()
	}
	fmt.Fprintf(&b, "column %q row %d (value %q): %s", e.Column, e.Row, e.Raw, e.Message)
	return b.String()
}

// Report is the assembled outcome of one validation run.
type Report struct {
	ID          core.ReportID  `json:"id"`
	Source      string         `json:"source,omitempty"`
	GeneratedAt core.Timestamp `json:"generated_at"`
	Errors      []Error        `json:"errors"`
}

// Passed reports whether the run produced no findings at all. Absence of
// errors is the only representation of success.
func (r *Report) Passed() bool { return len(r.Errors) == 0 }

// ByKind returns the findings of one kind, preserving report order.
func (r *Report) ByKind(kind Kind) []Error {
	var out []Error
	for _, e := range r.Errors {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ByColumn returns the findings for one column, preserving report order.
func (r *Report) ByColumn(name string) []Error {
	var out []Error
	for _, e := range r.Errors {
		if e.Column == name {
			out = append(out, e)
		}
	}
	return out
}
