// Command analyze runs the station report pipeline over a local spreadsheet
// or CSV export without starting the service. It prints the aggregated
// report as JSON, or writes a per-station pivot workbook when -station is set.
//
// Usage:
//
//	go run ./cmd/analyze -file measurements.xlsx
//	go run ./cmd/analyze -file measurements.csv -tokens TUS,CT
//	go run ./cmd/analyze -file measurements.xlsx -station TUS -out analyzed_TUS.xlsx
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/station-report-service/internal/adapter/csvfile"
	"github.com/couchcryptid/station-report-service/internal/adapter/xlsx"
	"github.com/couchcryptid/station-report-service/internal/domain"
)

func main() {
	file := flag.String("file", "", "path to the .xlsx or .csv measurement export")
	tokens := flag.String("tokens", strings.Join(domain.DefaultAcceptedTokens(), ","), "comma-separated accepted station tokens")
	station := flag.String("station", "", "station token to pivot and export (optional)")
	out := flag.String("out", "analyzed.xlsx", "output path for the pivot workbook when -station is set")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*file, *tokens, *station, *out); err != nil {
		log.Fatal(err)
	}
}

func run(path, tokens, station, out string) error {
	table, err := readTable(path)
	if err != nil {
		return err
	}

	opts := domain.Options{AcceptedTokens: splitTokens(tokens)}

	if err := domain.ValidateSchema(table, domain.DefaultRequiredColumns()); err != nil {
		return err
	}
	c := domain.Classify(table, opts)

	if station != "" {
		pivot, err := domain.BuildPivot(station, c.Accepted, opts)
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := xlsx.WritePivot(f, pivot); err != nil {
			return err
		}
		fmt.Printf("wrote %s: %d rows, %d positions\n", out, len(pivot.Rows), len(pivot.Columns)-2)
		return nil
	}

	report := domain.BuildReport(c, domain.Aggregate(c.Accepted))
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func readTable(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsx.ReadTable(f)
	case ".csv":
		return csvfile.ReadTable(f)
	default:
		return domain.Table{}, errors.New("unsupported file type: expected .xlsx or .csv")
	}
}

func splitTokens(s string) []string {
	var tokens []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
