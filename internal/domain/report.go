package domain

import (
	"sort"
	"time"
)

// Report is the presentation-ready output of one pipeline run: the ordered
// group summaries plus the run-level counters. It is a pure data structure;
// any renderer (JSON, xlsx, CSV) can consume it without re-deriving
// statistics.
type Report struct {
	Groups               []GroupSummary `json:"groups"`
	TotalRows            int            `json:"total_rows"`
	Accepted             int            `json:"accepted"`
	ExcludedByIdentifier int            `json:"excluded_by_identifier"`
	ExcludedByMalformed  int            `json:"excluded_by_malformed_field"`
	GeneratedAt          time.Time      `json:"generated_at"`
}

// BuildReport assembles group summaries and classification counters into a
// Report. Groups are sorted by StationID then PCode so output is stable
// regardless of input row order. An empty classification produces a report
// with an empty group list and zero counters, not an error.
func BuildReport(c Classification, groups []GroupSummary) Report {
	sorted := make([]GroupSummary, len(groups))
	copy(sorted, groups)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StationID != sorted[j].StationID {
			return sorted[i].StationID < sorted[j].StationID
		}
		return sorted[i].PCode < sorted[j].PCode
	})

	return Report{
		Groups:               sorted,
		TotalRows:            c.TotalRows,
		Accepted:             len(c.Accepted),
		ExcludedByIdentifier: c.ExcludedByIdentifier,
		ExcludedByMalformed:  c.ExcludedByMalformed,
		GeneratedAt:          clock.Now().UTC(),
	}
}
