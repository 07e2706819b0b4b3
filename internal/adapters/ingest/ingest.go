// Package ingest decodes tabular sources into raw rows.
//
// Two source formats are supported: CSV and XLSX. Both require a
// header row and map every following row to a RawRow keyed by header
// name, so uploads and the bundled resource funnel into the same
// sanitizer entry point regardless of origin.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/paceline/paceline/internal/domain/model"
)

// Format identifies a supported tabular encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat resolves a format from a file name. Unknown extensions
// fall back to CSV, the common case for exports.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Decode reads all rows from r in the given format.
func Decode(r io.Reader, format Format) ([]model.RawRow, error) {
	switch format {
	case FormatXLSX:
		return DecodeXLSX(r)
	default:
		return DecodeCSV(r)
	}
}

// ReadFile loads the bundled resource at path, picking the format from
// the file extension.
func ReadFile(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f, DetectFormat(path))
}

// DecodeCSV reads a header row plus data rows. Records may have
// ragged lengths; cells beyond the header are dropped and short rows
// simply leave fields absent for the sanitizer to reject.
func DecodeCSV(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty source", ErrMissingHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	normalizeHeader(header)

	var rows []model.RawRow
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		rows = append(rows, rowFromCells(header, cells))
	}
	return rows, nil
}

// DecodeXLSX reads the first sheet of a spreadsheet, treating its
// first row as the header.
func DecodeXLSX(r io.Reader) ([]model.RawRow, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingHeader)
	}
	all, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrMissingHeader)
	}

	header := all[0]
	normalizeHeader(header)
	rows := make([]model.RawRow, 0, len(all)-1)
	for _, cells := range all[1:] {
		rows = append(rows, rowFromCells(header, cells))
	}
	return rows, nil
}

// normalizeHeader trims and lowercases header names in place so field
// lookups are case-insensitive across export variants.
func normalizeHeader(header []string) {
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
}

// rowFromCells zips header names with cell values. Extra cells are
// ignored; missing cells leave the field absent.
func rowFromCells(header, cells []string) model.RawRow {
	row := make(model.RawRow, len(header))
	for i, name := range header {
		if name == "" || i >= len(cells) {
			continue
		}
		row[name] = cells[i]
	}
	return row
}
