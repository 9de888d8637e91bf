// Package testkit builds conformant Discrete Sample Summary fixtures
// for tests, plus small mutators for breaking them in controlled ways.
package testkit

import (
	"fmt"
	"strings"

	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
	"github.com/reedan88/ooicgsn-data-tools/internal/discrete"
)

// AcceptedCruises returns the cruise registry used by fixtures.
func AcceptedCruises() []string {
	return []string{"AR-04", "AT-26", "SKQ-2021-12"}
}

// ValidFlag is a conformant 17-character quality flag.
const ValidFlag = "*0000000000000010"

// ValidTimestamp is a conformant sheet timestamp.
const ValidTimestamp = "2021-06-15T10:30:45.123456Z"

// SummaryTable builds a fully conformant table with the canonical
// header, one cruise and one station, and the given number of rows.
func SummaryTable(rows int) *sample.Table {
	header := discrete.Header()
	cols := make([]sample.Column, len(header))
	for ci, name := range header {
		cells := make([]sample.Cell, rows)
		for ri := 0; ri < rows; ri++ {
			cells[ri] = defaultCell(name, ri)
		}
		cols[ci] = sample.Column{Name: name, Cells: cells}
	}
	t, err := sample.NewTable(cols...)
	if err != nil {
		panic(fmt.Sprintf("testkit: invalid fixture table: %v", err))
	}
	return t
}

// defaultCell produces a valid value for the named catalog column.
// Per-event metadata is constant so grouped validation passes.
func defaultCell(name string, row int) sample.Cell {
	switch {
	case name == "Cruise":
		return sample.String("AR-04")
	case name == "Station":
		return sample.String("12")
	case name == "Cast":
		return sample.String("3")
	case name == "Niskin/Bottle Position":
		return sample.String(fmt.Sprintf("%d", row%24+1))
	case name == "Target Asset":
		return sample.String("GI01SUMO")
	case name == "CTD File":
		return sample.String("ar04_012.hex")
	case name == "Comments":
		return sample.Null
	case strings.HasSuffix(name, "Flag"):
		return sample.String(ValidFlag)
	case strings.Contains(name, "[UTC]"):
		return sample.String(ValidTimestamp)
	case strings.Contains(name, "pH"):
		return sample.String("7.8")
	default:
		// Inside every non-pH measurement envelope in the catalog.
		return sample.String("4.5")
	}
}

// WithCell returns a copy of the table with one cell replaced.
func WithCell(t *sample.Table, column string, row int, cell sample.Cell) *sample.Table {
	src := t.Columns()
	cols := make([]sample.Column, len(src))
	for i, col := range src {
		cells := make([]sample.Cell, len(col.Cells))
		copy(cells, col.Cells)
		if col.Name == column {
			cells[row] = cell
		}
		cols[i] = sample.Column{Name: col.Name, Cells: cells}
	}
	out, err := sample.NewTable(cols...)
	if err != nil {
		panic(fmt.Sprintf("testkit: invalid mutated table: %v", err))
	}
	return out
}

// CSV renders a table as CSV text for adapter and API fixtures.
func CSV(t *sample.Table) string {
	var b strings.Builder
	cols := t.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = csvQuote(c.Name)
	}
	b.WriteString(strings.Join(names, ","))
	b.WriteString("\n")
	for row := 0; row < t.Rows(); row++ {
		fields := make([]string, len(cols))
		for i, c := range cols {
			fields[i] = csvQuote(c.Cells[row].Raw())
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func csvQuote(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
