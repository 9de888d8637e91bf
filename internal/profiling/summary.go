// Package profiling computes per-column summary statistics that
// accompany a QC report. Profiles are descriptive only; they never
// produce validation findings.
package profiling

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
)

// ColumnSummary describes one column's contents: how many cells held
// real values, fill sentinels, or nothing, and the distribution of the
// numeric values.
type ColumnSummary struct {
	Name      string  `json:"name"`
	Rows      int     `json:"rows"`
	NullCount int     `json:"null_count"`
	FillCount int     `json:"fill_count"`
	// The statistical fields carry no omitempty: zero is a legitimate
	// minimum for depth or oxygen columns. Numeric tells consumers
	// whether the distribution fields mean anything.
	Numeric  int     `json:"numeric_count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Summarize profiles every column of the table in table order.
func Summarize(t *sample.Table) []ColumnSummary {
	cols := t.Columns()
	out := make([]ColumnSummary, len(cols))
	for i, col := range cols {
		out[i] = summarizeColumn(col)
	}
	return out
}

func summarizeColumn(col sample.Column) ColumnSummary {
	summary := ColumnSummary{Name: col.Name, Rows: len(col.Cells)}

	var values []float64
	for _, c := range col.Cells {
		switch {
		case c.IsNull():
			summary.NullCount++
		case c.IsFill():
			summary.FillCount++
		default:
			if f, ok := c.Float(); ok {
				values = append(values, f)
			}
		}
	}
	summary.Numeric = len(values)
	if len(values) == 0 {
		return summary
	}

	// The montanaflynn helpers only error on empty input, which is
	// excluded above.
	summary.Min, _ = stats.Min(values)
	summary.Max, _ = stats.Max(values)
	summary.Mean, _ = stats.Mean(values)
	summary.Median, _ = stats.Median(values)
	summary.StdDev, _ = stats.StandardDeviation(values)

	// Shape statistics are meaningless for tiny or constant columns.
	if len(values) >= 4 && summary.StdDev > 0 {
		summary.Skewness = stat.Skew(values, nil)
		summary.Kurtosis = stat.ExKurtosis(values, nil)
	}
	return summary
}
