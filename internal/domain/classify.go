package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Measurement is one accepted, fully parsed row. Parsing happens exactly
// once here in the classifier; downstream stages consume typed values and
// never re-validate.
type Measurement struct {
	StationID string
	PCode     string
	Time      time.Time
	Result    float64
}

// Classification is the partition of an input table's rows.
type Classification struct {
	Accepted             []Measurement
	TotalRows            int
	ExcludedByIdentifier int
	ExcludedByMalformed  int
}

// dateTimeLayouts are the timestamp formats seen in measurement exports.
// Spreadsheet readers hand back formatted strings, so the list covers both
// ISO-style exports and the default Excel datetime rendering (m/d/yy hh:mm).
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/06 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Classify partitions the table's rows into accepted measurements, rows
// excluded because their Station_ID matches no accepted token, and rows
// excluded because Result or Date_Time failed to parse.
//
// The identifier rule is deliberately lenient: case-insensitive substring
// containment, so token "CT" matches "OCTOBER-ID". Empty or whitespace-only
// Station_ID counts as an identifier mismatch; whitespace-only Result or
// Date_Time counts as malformed.
//
// Classify assumes the table already passed ValidateSchema.
func Classify(t Table, opts Options) Classification {
	opts = opts.withDefaults()

	stationIdx, _ := t.ColumnIndex(ColStationID)
	pcodeIdx, _ := t.ColumnIndex(ColPCode)
	timeIdx, _ := t.ColumnIndex(ColDateTime)
	resultIdx, _ := t.ColumnIndex(ColResult)

	c := Classification{TotalRows: len(t.Rows)}
	for _, row := range t.Rows {
		stationID := t.cell(row, stationIdx)
		if !matchesAnyToken(stationID, opts.AcceptedTokens) {
			c.ExcludedByIdentifier++
			continue
		}

		result, resultOK := parseResult(t.cell(row, resultIdx))
		sampleTime, timeOK := parseDateTime(t.cell(row, timeIdx))
		if !resultOK || !timeOK {
			c.ExcludedByMalformed++
			continue
		}

		c.Accepted = append(c.Accepted, Measurement{
			StationID: stationID,
			PCode:     t.cell(row, pcodeIdx),
			Time:      sampleTime,
			Result:    result,
		})
	}
	return c
}

// matchesAnyToken reports whether the station identifier contains at least
// one accepted token, ignoring case. An empty identifier never matches.
func matchesAnyToken(stationID string, tokens []string) bool {
	if stationID == "" {
		return false
	}
	id := strings.ToUpper(stationID)
	for _, tok := range tokens {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok != "" && strings.Contains(id, tok) {
			return true
		}
	}
	return false
}

// parseResult parses a Result cell. strconv.ParseFloat accepts "NaN" and
// "Inf" spellings, but a non-finite result is not a measurement: NaN breaks
// min/max comparisons and neither value survives JSON encoding, so both are
// treated as malformed.
func parseResult(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseDateTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
