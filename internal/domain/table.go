package domain

import (
	"sort"
	"strings"
)

// Canonical column names of a measurement export. Matching is
// case-insensitive; these spellings are what the upstream system produces.
const (
	ColStationID = "Station_ID"
	ColPCode     = "PCode"
	ColDateTime  = "Date_Time"
	ColResult    = "Result"
)

// Table is an in-memory tabular dataset: ordered column names plus rows of
// string cells aligned to those columns. The file format it came from
// (xlsx, csv) is an adapter concern; the core only ever sees a Table.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, matching
// case-insensitively and ignoring surrounding whitespace.
func (t Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col), strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// cell returns the trimmed value of column idx in the given row. Rows
// shorter than the header (common in spreadsheet exports with trailing
// blanks) yield an empty string.
func (t Table) cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Stations returns the distinct non-empty Station_ID values in the table,
// sorted ascending. It fails only when the Station_ID column is absent.
func Stations(t Table) ([]string, error) {
	idx, ok := t.ColumnIndex(ColStationID)
	if !ok {
		return nil, &SchemaError{Missing: []string{ColStationID}}
	}

	seen := make(map[string]struct{})
	stations := make([]string, 0)
	for _, row := range t.Rows {
		id := t.cell(row, idx)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		stations = append(stations, id)
	}

	sort.Strings(stations)
	return stations, nil
}
