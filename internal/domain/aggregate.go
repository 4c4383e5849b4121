package domain

import "time"

// GroupSummary holds the aggregate statistics for one (Station_ID, PCode)
// group. A summary is only materialized for groups with at least one
// accepted row, so Count is always >= 1.
type GroupSummary struct {
	StationID    string    `json:"station_id"`
	PCode        string    `json:"pcode"`
	Count        int       `json:"count"`
	MinResult    float64   `json:"min_result"`
	MaxResult    float64   `json:"max_result"`
	LatestResult float64   `json:"latest_result"`
	LatestTime   time.Time `json:"latest_time"`
}

type groupKey struct {
	stationID string
	pcode     string
}

// Aggregate groups accepted measurements by (StationID, PCode) and computes
// per-group count, min/max Result, and the Result of the latest sample.
// "Latest" means strictly greater Time; on ties the first occurrence in
// input order wins. Summaries are returned in first-seen order; the report
// builder owns the final sort.
//
// Results are used as parsed, with no rounding; formatting is a
// presentation concern.
func Aggregate(measurements []Measurement) []GroupSummary {
	byKey := make(map[groupKey]int, len(measurements))
	groups := make([]GroupSummary, 0, len(measurements))

	for _, m := range measurements {
		key := groupKey{stationID: m.StationID, pcode: m.PCode}
		i, ok := byKey[key]
		if !ok {
			byKey[key] = len(groups)
			groups = append(groups, GroupSummary{
				StationID:    m.StationID,
				PCode:        m.PCode,
				Count:        1,
				MinResult:    m.Result,
				MaxResult:    m.Result,
				LatestResult: m.Result,
				LatestTime:   m.Time,
			})
			continue
		}

		g := &groups[i]
		g.Count++
		if m.Result < g.MinResult {
			g.MinResult = m.Result
		}
		if m.Result > g.MaxResult {
			g.MaxResult = m.Result
		}
		if m.Time.After(g.LatestTime) {
			g.LatestTime = m.Time
			g.LatestResult = m.Result
		}
	}
	return groups
}
