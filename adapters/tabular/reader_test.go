package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "Cruise, Station ,Cast\nAR-04,12,3\nAR-04,12,3\n")

	table, err := NewReader(path).Read()
	require.NoError(t, err)

	// Header names are trimmed.
	assert.Equal(t, []string{"Cruise", "Station", "Cast"}, table.Header())
	assert.Equal(t, 2, table.Rows())

	col, ok := table.Column("Station")
	require.True(t, ok)
	assert.Equal(t, "12", col.Cells[0].Raw())
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := writeCSV(t, "A,B,C\n1,2\n")

	table, err := NewReader(path).Read()
	require.NoError(t, err)
	require.Equal(t, 1, table.Rows())

	col, ok := table.Column("C")
	require.True(t, ok)
	assert.True(t, col.Cells[0].IsNull())
}

func TestReadCSVBlankCellsAreNull(t *testing.T) {
	path := writeCSV(t, "A,B\n1,\n,2\n")

	table, err := NewReader(path).Read()
	require.NoError(t, err)

	a, _ := table.Column("A")
	b, _ := table.Column("B")
	assert.False(t, a.Cells[0].IsNull())
	assert.True(t, b.Cells[0].IsNull())
	assert.True(t, a.Cells[1].IsNull())
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeCSV(t, "A,B\n")

	table, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Rows())
	assert.Equal(t, []string{"A", "B"}, table.Header())
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.csv")).Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadDuplicateHeaderRejected(t *testing.T) {
	path := writeCSV(t, "A,A\n1,2\n")
	_, err := NewReader(path).Read()
	assert.Error(t, err)
}

func TestNewReaderPicksTypeByExtension(t *testing.T) {
	assert.Equal(t, "csv", NewReader("sheet.CSV").fileType)
	assert.Equal(t, "xlsx", NewReader("sheet.xlsx").fileType)
	assert.Equal(t, "xlsx", NewReader("sheet").fileType)
}
