package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPivot(t *testing.T) {
	opts := DefaultOptions()

	t.Run("one row per date one column per position", func(t *testing.T) {
		measurements := []Measurement{
			{StationID: "TUS001", PCode: "P01", Time: day(1), Result: 10.5},
			{StationID: "TUS001", PCode: "P03", Time: day(1), Result: 15.7},
			{StationID: "TUS001", PCode: "P02", Time: day(2), Result: 20.3},
			{StationID: "CTX2", PCode: "P01", Time: day(1), Result: 99},
		}

		pivot, err := BuildPivot("TUS", measurements, opts)
		require.NoError(t, err)

		assert.Equal(t, []string{"Station", "Dates", "Data 1", "Data 2", "Data 3"}, pivot.Columns)
		require.Len(t, pivot.Rows, 2)

		assert.Equal(t, []string{"TUS", "01-01-2024", "10.5", "", "15.7"}, pivot.Rows[0])
		assert.Equal(t, []string{"TUS", "02-01-2024", "", "20.3", ""}, pivot.Rows[1])
		assert.Zero(t, pivot.SkippedPositions)
	})

	t.Run("rows sorted by time ascending", func(t *testing.T) {
		measurements := []Measurement{
			{StationID: "CTX2", PCode: "P01", Time: day(9), Result: 2},
			{StationID: "CTX2", PCode: "P01", Time: day(3), Result: 1},
		}

		pivot, err := BuildPivot("CT", measurements, opts)
		require.NoError(t, err)

		require.Len(t, pivot.Rows, 2)
		assert.Equal(t, "03-01-2024", pivot.Rows[0][1])
		assert.Equal(t, "09-01-2024", pivot.Rows[1][1])
	})

	t.Run("non-numeric position suffix skipped and counted", func(t *testing.T) {
		measurements := []Measurement{
			{StationID: "TUS001", PCode: "P01", Time: day(1), Result: 1},
			{StationID: "TUS001", PCode: "RAW", Time: day(1), Result: 2},
			{StationID: "TUS001", PCode: "X", Time: day(1), Result: 3},
		}

		pivot, err := BuildPivot("TUS", measurements, opts)
		require.NoError(t, err)

		assert.Equal(t, 2, pivot.SkippedPositions)
		assert.Equal(t, []string{"Station", "Dates", "Data 1"}, pivot.Columns)
	})

	t.Run("token not in accepted set", func(t *testing.T) {
		_, err := BuildPivot("RIV", nil, opts)
		require.ErrorIs(t, err, ErrStationTokenNotAccepted)
	})

	t.Run("token match is case-insensitive", func(t *testing.T) {
		pivot, err := BuildPivot("tus", []Measurement{
			{StationID: "TUS001", PCode: "P01", Time: day(1), Result: 1},
		}, opts)
		require.NoError(t, err)
		assert.Len(t, pivot.Rows, 1)
	})

	t.Run("no matching measurements yields header-only pivot", func(t *testing.T) {
		pivot, err := BuildPivot("CT", []Measurement{
			{StationID: "TUS001", PCode: "P01", Time: day(1), Result: 1},
		}, opts)
		require.NoError(t, err)

		assert.Equal(t, []string{"Station", "Dates"}, pivot.Columns)
		assert.Empty(t, pivot.Rows)
	})
}

func TestPositionCode(t *testing.T) {
	tests := []struct {
		pcode    string
		expected int
		ok       bool
	}{
		{"P01", 1, true},
		{"P12", 12, true},
		{"FLOW07", 7, true},
		{"P00", 0, false},
		{"RAW", 0, false},
		{"X", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.pcode, func(t *testing.T) {
			n, ok := positionCode(tt.pcode)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, n)
			}
		})
	}
}

func TestPivotDateFormatting(t *testing.T) {
	ts := time.Date(2024, 12, 31, 8, 30, 0, 0, time.UTC)
	pivot, err := BuildPivot("TUS", []Measurement{
		{StationID: "TUS001", PCode: "P01", Time: ts, Result: 4},
	}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, pivot.Rows, 1)
	assert.Equal(t, "31-12-2024", pivot.Rows[0][1])
}
