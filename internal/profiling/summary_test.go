package profiling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
)

func TestSummarizeCountsAndStats(t *testing.T) {
	table, err := sample.NewTable(
		sample.Column{Name: "Salinity", Cells: []sample.Cell{
			sample.String("34.0"),
			sample.String("35.0"),
			sample.String("36.0"),
			sample.String("-9999999"),
			sample.Null,
		}},
	)
	require.NoError(t, err)

	profiles := Summarize(table)
	require.Len(t, profiles, 1)
	p := profiles[0]

	assert.Equal(t, "Salinity", p.Name)
	assert.Equal(t, 5, p.Rows)
	assert.Equal(t, 1, p.NullCount)
	assert.Equal(t, 1, p.FillCount)
	assert.Equal(t, 3, p.Numeric)
	assert.Equal(t, 34.0, p.Min)
	assert.Equal(t, 36.0, p.Max)
	assert.Equal(t, 35.0, p.Mean)
	assert.Equal(t, 35.0, p.Median)
	assert.InDelta(t, 0.8165, p.StdDev, 0.001)
	// Fewer than four numeric values, so no shape statistics.
	assert.Zero(t, p.Skewness)
	assert.Zero(t, p.Kurtosis)
}

func TestSummarizeNonNumericColumn(t *testing.T) {
	table, err := sample.NewTable(
		sample.Column{Name: "Comments", Cells: []sample.Cell{
			sample.String("bottle fired early"),
			sample.Null,
		}},
	)
	require.NoError(t, err)

	p := Summarize(table)[0]
	assert.Equal(t, 2, p.Rows)
	assert.Equal(t, 1, p.NullCount)
	assert.Equal(t, 0, p.Numeric)
	assert.Zero(t, p.Min)
	assert.Zero(t, p.Mean)
}

func TestSummarizeConstantColumnSkipsShapeStats(t *testing.T) {
	cells := make([]sample.Cell, 10)
	for i := range cells {
		cells[i] = sample.String("7.0")
	}
	table, err := sample.NewTable(sample.Column{Name: "Cast", Cells: cells})
	require.NoError(t, err)

	p := Summarize(table)[0]
	assert.Equal(t, 10, p.Numeric)
	assert.Equal(t, 7.0, p.Mean)
	assert.Zero(t, p.StdDev)
	assert.Zero(t, p.Skewness)
	assert.Zero(t, p.Kurtosis)
}

func TestSummaryJSONKeepsZeroValuedStats(t *testing.T) {
	// A column sitting at the surface has Min 0; the profile must not
	// drop it from the JSON encoding.
	table, err := sample.NewTable(
		sample.Column{Name: "CTD Depth [m]", Cells: []sample.Cell{
			sample.String("0"),
			sample.String("10"),
			sample.String("20"),
		}},
	)
	require.NoError(t, err)

	raw, err := json.Marshal(Summarize(table)[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"min":0`)
	assert.Contains(t, string(raw), `"max":20`)
	assert.Contains(t, string(raw), `"skewness":0`)
}

func TestSummarizePreservesTableOrder(t *testing.T) {
	table, err := sample.NewTable(
		sample.Column{Name: "B", Cells: []sample.Cell{sample.String("1")}},
		sample.Column{Name: "A", Cells: []sample.Cell{sample.String("2")}},
	)
	require.NoError(t, err)

	profiles := Summarize(table)
	require.Len(t, profiles, 2)
	assert.Equal(t, "B", profiles[0].Name)
	assert.Equal(t, "A", profiles[1].Name)
}
