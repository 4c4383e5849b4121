// Package xlsx converts between Excel workbooks and the core's in-memory
// Table, keeping all spreadsheet-format concerns out of the domain.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/station-report-service/internal/domain"
)

// sheetName is used for generated workbooks, matching the sheet name of the
// legacy analysis exports consumers already ingest.
const sheetName = "Analysis"

// ReadTable reads the first sheet of an xlsx workbook into a Table. The
// first row is the header; data rows shorter than the header (trailing blank
// cells are trimmed by the reader) are padded with empty strings.
func ReadTable(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return domain.Table{}, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, errors.New("workbook has no header row")
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(header))
		copy(cells, row)
		data = append(data, cells)
	}

	return domain.Table{Columns: header, Rows: data}, nil
}

// WriteTable writes columns and rows as an xlsx workbook.
func WriteTable(w io.Writer, t domain.Table) error {
	return writeSheet(w, t.Columns, t.Rows)
}

// WritePivot writes a date-by-position pivot as an xlsx workbook ready for
// download.
func WritePivot(w io.Writer, p domain.Pivot) error {
	return writeSheet(w, p.Columns, p.Rows)
}

func writeSheet(w io.Writer, columns []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
