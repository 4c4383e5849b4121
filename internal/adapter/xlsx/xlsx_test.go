package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/station-report-service/internal/domain"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadTable(t *testing.T) {
	t.Run("header and data rows", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			{"Station_ID", "PCode", "Date_Time", "Result"},
			{"TUS001", "P01", "2024-01-01", 10.5},
			{"CTX2", "P02", "2024-01-02", 12.1},
		})

		table, err := ReadTable(buf)
		require.NoError(t, err)

		assert.Equal(t, []string{"Station_ID", "PCode", "Date_Time", "Result"}, table.Columns)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "TUS001", table.Rows[0][0])
		assert.Equal(t, "10.5", table.Rows[0][3])
	})

	t.Run("short rows padded to header width", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			{"Station_ID", "PCode", "Date_Time", "Result"},
			{"TUS001", "P01"},
		})

		table, err := ReadTable(buf)
		require.NoError(t, err)

		require.Len(t, table.Rows, 1)
		assert.Len(t, table.Rows[0], 4)
		assert.Equal(t, "", table.Rows[0][3])
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := ReadTable(bytes.NewBufferString("plain text"))
		assert.Error(t, err)
	})
}

func TestWriteReadRoundTrip(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Station", "Dates", "Data 1", "Data 2"},
		Rows: [][]string{
			{"TUS", "01-01-2024", "10.5", ""},
			{"TUS", "02-01-2024", "", "20.3"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))

	got, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "10.5", got.Rows[0][2])
	assert.Equal(t, "20.3", got.Rows[1][3])
}

func TestWritePivot(t *testing.T) {
	pivot := domain.Pivot{
		Columns: []string{"Station", "Dates", "Data 1"},
		Rows:    [][]string{{"CT", "05-01-2024", "9"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePivot(&buf, pivot))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Analysis", f.GetSheetName(0))
	rows, err := f.GetRows("Analysis")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Station", "Dates", "Data 1"}, rows[0])
	assert.Equal(t, []string{"CT", "05-01-2024", "9"}, rows[1])
}
