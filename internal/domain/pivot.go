package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrStationTokenNotAccepted is returned when a pivot export is requested
// for a station token that is not in the configured accepted set.
var ErrStationTokenNotAccepted = errors.New("station token is not in the accepted set")

// pivotDateFormat is the day-month-year rendering used in exported sheets.
const pivotDateFormat = "02-01-2006"

// Pivot is the exportable date-by-position view of one station's
// measurements: one row per distinct sample timestamp, one "Data N" column
// per position code. Cells hold the Result for that (timestamp, position),
// empty when no sample exists.
type Pivot struct {
	Columns []string
	Rows    [][]string

	// SkippedPositions counts measurements dropped because their PCode does
	// not end in a two-digit position number.
	SkippedPositions int
}

// BuildPivot reshapes the measurements matching the given station token into
// a Pivot. The token must be one of opts.AcceptedTokens (case-insensitive);
// matching against measurements uses the same substring rule as the
// classifier.
//
// The position code is the integer value of the last two characters of
// PCode, e.g. "P07" -> 7. The column count is driven by the highest position
// seen, so sparse positions still line up.
func BuildPivot(token string, measurements []Measurement, opts Options) (Pivot, error) {
	opts = opts.withDefaults()
	if !tokenAccepted(token, opts.AcceptedTokens) {
		return Pivot{}, fmt.Errorf("%w: %q (accepted: %s)",
			ErrStationTokenNotAccepted, token, strings.Join(opts.AcceptedTokens, ", "))
	}

	type sample struct {
		position int
		result   float64
	}

	byTime := make(map[time.Time][]sample)
	var times []time.Time
	maxPosition := 0
	skipped := 0

	for _, m := range measurements {
		if !matchesAnyToken(m.StationID, []string{token}) {
			continue
		}
		position, ok := positionCode(m.PCode)
		if !ok {
			skipped++
			continue
		}
		if _, seen := byTime[m.Time]; !seen {
			times = append(times, m.Time)
		}
		byTime[m.Time] = append(byTime[m.Time], sample{position: position, result: m.Result})
		if position > maxPosition {
			maxPosition = position
		}
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	columns := []string{"Station", "Dates"}
	for i := 1; i <= maxPosition; i++ {
		columns = append(columns, "Data "+strconv.Itoa(i))
	}

	rows := make([][]string, 0, len(times))
	for _, ts := range times {
		row := make([]string, len(columns))
		row[0] = token
		row[1] = ts.Format(pivotDateFormat)
		for _, s := range byTime[ts] {
			if s.position >= 1 {
				row[s.position+1] = strconv.FormatFloat(s.result, 'f', -1, 64)
			}
		}
		rows = append(rows, row)
	}

	return Pivot{Columns: columns, Rows: rows, SkippedPositions: skipped}, nil
}

// positionCode extracts the position number from the last two characters of
// a parameter code, e.g. "P07" -> 7.
func positionCode(pcode string) (int, bool) {
	if len(pcode) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(pcode[len(pcode)-2:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// tokenAccepted reports whether token equals one of the accepted tokens,
// ignoring case. Unlike row classification this is an exact match: exports
// are requested per network token, not per free-text station.
func tokenAccepted(token string, accepted []string) bool {
	for _, tok := range accepted {
		if strings.EqualFold(strings.TrimSpace(token), strings.TrimSpace(tok)) {
			return true
		}
	}
	return false
}
