package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenClock(t *testing.T) clockwork.Clock {
	t.Helper()
	fake := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })
	return fake
}

func TestBuildReport(t *testing.T) {
	t.Run("sorts groups by station then pcode", func(t *testing.T) {
		frozenClock(t)
		groups := []GroupSummary{
			{StationID: "TUS002", PCode: "P1", Count: 1},
			{StationID: "CTX2", PCode: "P9", Count: 1},
			{StationID: "TUS001", PCode: "P2", Count: 1},
			{StationID: "TUS001", PCode: "P1", Count: 1},
		}

		report := BuildReport(Classification{TotalRows: 4, Accepted: make([]Measurement, 4)}, groups)

		require.Len(t, report.Groups, 4)
		assert.Equal(t, "CTX2", report.Groups[0].StationID)
		assert.Equal(t, "TUS001", report.Groups[1].StationID)
		assert.Equal(t, "P1", report.Groups[1].PCode)
		assert.Equal(t, "P2", report.Groups[2].PCode)
		assert.Equal(t, "TUS002", report.Groups[3].StationID)

		// Input slice untouched.
		assert.Equal(t, "TUS002", groups[0].StationID)
	})

	t.Run("carries counters and timestamp", func(t *testing.T) {
		frozenClock(t)
		c := Classification{
			TotalRows:            10,
			Accepted:             make([]Measurement, 6),
			ExcludedByIdentifier: 3,
			ExcludedByMalformed:  1,
		}

		report := BuildReport(c, nil)

		assert.Equal(t, 10, report.TotalRows)
		assert.Equal(t, 6, report.Accepted)
		assert.Equal(t, 3, report.ExcludedByIdentifier)
		assert.Equal(t, 1, report.ExcludedByMalformed)
		assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
	})

	t.Run("empty classification yields zero report not error", func(t *testing.T) {
		frozenClock(t)
		report := BuildReport(Classification{}, nil)

		assert.Empty(t, report.Groups)
		assert.Zero(t, report.TotalRows)
		assert.Zero(t, report.Accepted)
		assert.Zero(t, report.ExcludedByIdentifier)
		assert.Zero(t, report.ExcludedByMalformed)
	})
}

// Running the full pipeline twice over the same table must produce
// byte-identical reports once the clock is frozen.
func TestPipelineIdempotence(t *testing.T) {
	frozenClock(t)

	table := measurementTable([][]string{
		{"CTX2", "P2", "2024-01-05", "9"},
		{"TUS001", "P1", "2024-01-02", "5"},
		{"TUS001", "P1", "2024-01-01", "3"},
		{"ABC", "P1", "2024-01-01", "1"},
		{"TUS003", "P4", "2024-01-01", "bad"},
	})

	run := func() []byte {
		c := Classify(table, DefaultOptions())
		report := BuildReport(c, Aggregate(c.Accepted))
		data, err := json.Marshal(report)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run())
}

// Scenario from the requirements: mixed stations, one identifier exclusion.
func TestScenarioMixedStations(t *testing.T) {
	frozenClock(t)

	table := measurementTable([][]string{
		{"TUS001", "P1", "2024-01-02", "5"},
		{"TUS001", "P1", "2024-01-01", "3"},
		{"CTX2", "P2", "2024-01-05", "9"},
		{"ABC", "P1", "2024-01-01", "1"},
	})

	c := Classify(table, DefaultOptions())
	report := BuildReport(c, Aggregate(c.Accepted))

	assert.Equal(t, 4, report.TotalRows)
	assert.Equal(t, 3, report.Accepted)
	assert.Equal(t, 1, report.ExcludedByIdentifier)
	assert.Zero(t, report.ExcludedByMalformed)

	require.Len(t, report.Groups, 2)

	ctx2 := report.Groups[0]
	assert.Equal(t, "CTX2", ctx2.StationID)
	assert.Equal(t, "P2", ctx2.PCode)
	assert.Equal(t, 1, ctx2.Count)
	assert.Equal(t, 9.0, ctx2.MinResult)
	assert.Equal(t, 9.0, ctx2.MaxResult)
	assert.Equal(t, 9.0, ctx2.LatestResult)

	tus := report.Groups[1]
	assert.Equal(t, "TUS001", tus.StationID)
	assert.Equal(t, 2, tus.Count)
	assert.Equal(t, 3.0, tus.MinResult)
	assert.Equal(t, 5.0, tus.MaxResult)
	assert.Equal(t, 5.0, tus.LatestResult)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), tus.LatestTime)
}
