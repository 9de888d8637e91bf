// Package tabular reads Discrete Sample Summary sheets from disk into
// the in-memory table the validation core consumes. The core itself
// never touches files; this adapter is the boundary.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
)

// Reader handles reading Excel and CSV summary sheets
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that handles both Excel and CSV files
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the sheet into a table. The first row is the header; short
// data rows are padded with null cells so the table stays rectangular.
func (r *Reader) Read() (*sample.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *Reader) readExcel() (*sample.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows)
}

func (r *Reader) readCSV() (*sample.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are padded below
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return tableFromRows(rows)
}

// tableFromRows converts raw row-major strings into the column-major
// table model.
func tableFromRows(rows [][]string) (*sample.Table, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet must have at least a header row")
	}

	headerRow := rows[0]
	cols := make([]sample.Column, len(headerRow))
	for i, header := range headerRow {
		cols[i] = sample.Column{
			Name:  strings.TrimSpace(header),
			Cells: make([]sample.Cell, len(rows)-1),
		}
	}

	for ri := 1; ri < len(rows); ri++ {
		for ci := range cols {
			if ci < len(rows[ri]) {
				cols[ci].Cells[ri-1] = sample.ParseCell(rows[ri][ci])
			} else {
				cols[ci].Cells[ri-1] = sample.Null
			}
		}
	}

	return sample.NewTable(cols...)
}
