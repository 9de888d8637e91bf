package sample

import (
	"fmt"
	"strconv"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
)

// FillValue is the sentinel recorded when a field was intentionally not
// measured. Any column constraint treats it as always valid.
const FillValue = "-9999999"

// CellType discriminates the small union of value kinds a spreadsheet
// cell can hold once parsed.
type CellType int

const (
	TypeNull CellType = iota
	TypeString
	TypeNumber
)

// Cell is a single tabular value: a string, a number, or null. Cells are
// immutable; coercion between representations is explicit and fallible.
type Cell struct {
	typ CellType
	str string
	num float64
}

// Null is the empty cell.
var Null = Cell{}

// String wraps a raw string value as a cell.
func String(s string) Cell {
	return Cell{typ: TypeString, str: s}
}

// Number wraps a numeric value as a cell.
func Number(f float64) Cell {
	return Cell{typ: TypeNumber, num: f}
}

// Type returns the cell's discriminator.
func (c Cell) Type() CellType { return c.typ }

// IsNull reports whether the cell holds no value at all.
func (c Cell) IsNull() bool { return c.typ == TypeNull }

// IsFill reports whether the cell holds the not-measured sentinel.
func (c Cell) IsFill() bool {
	switch c.typ {
	case TypeString:
		return c.str == FillValue
	case TypeNumber:
		return c.num == -9999999
	default:
		return false
	}
}

// Raw returns the cell's text form: the original string, the shortest
// exact plain-decimal rendering of a number, or "" for null. Numbers
// never render in exponent notation, so the text form of a numeric fill
// sentinel is the sentinel literal and pattern or set checks see the
// same digits a spreadsheet shows.
func (c Cell) Raw() string {
	switch c.typ {
	case TypeString:
		return c.str
	case TypeNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and value.
func (c Cell) Equal(other Cell) bool {
	if c.typ != other.typ {
		return false
	}
	switch c.typ {
	case TypeString:
		return c.str == other.str
	case TypeNumber:
		return c.num == other.num
	default:
		return true
	}
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Table is an ordered collection of equal-length named columns. Row order
// is significant for the header check and for error reporting.
type Table struct {
	cols  []Column
	index map[string]int
}

// NewTable builds a table from columns, enforcing the equal-length and
// unique-name invariants.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{cols: cols, index: make(map[string]int, len(cols))}
	rows := -1
	for i, col := range cols {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name)
		}
		t.index[col.Name] = i
		if rows == -1 {
			rows = len(col.Cells)
		} else if len(col.Cells) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				core.ErrRaggedTable, col.Name, len(col.Cells), rows)
		}
	}
	return t, nil
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// Columns returns the columns in table order.
func (t *Table) Columns() []Column { return t.cols }

// Header returns the column names in table order.
func (t *Table) Header() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Rows returns the row count (zero for an empty table).
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}
