// Package domain models station measurement spreadsheets and the
// validation-and-aggregation pipeline that turns them into reports.
//
// # Input Data
//
// Measurement exports arrive as a single table with four required columns:
//
//	Station_ID  free-text station identifier, e.g. "TUS001"
//	PCode       parameter code for the measured quantity, e.g. "P01"
//	Date_Time   sample timestamp
//	Result      numeric measured value
//
// Column names are matched case-insensitively because the exports are
// authored by hand and casing varies between spreadsheets.
//
// # Station Filtering
//
// Only stations belonging to the monitored networks are in scope. A row is
// accepted when its Station_ID contains one of the configured accepted
// tokens (default "TUS" and "CT"), compared case-insensitively. The rule is
// plain substring containment, so "CT" also matches identifiers like
// "OCTOBER-ID"; this leniency is intentional and mirrors how the station
// naming convention is documented.
//
// # Row-Level Failures
//
// Rows with an unparseable Result or Date_Time are excluded and counted as
// malformed, separately from rows excluded by identifier. Row-level problems
// never abort a run; only a missing required column (SchemaError) does.
//
// # Aggregation
//
// Accepted rows are grouped by (Station_ID, PCode). Each group reports its
// row count, min/max Result, and the Result of the row with the latest
// Date_Time. Latest-time ties keep the first occurrence in input order, so
// output is deterministic for any fixed input.
package domain
