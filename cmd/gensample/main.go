// Command gensample writes a small synthetic measurement workbook for local
// testing of the upload endpoints. The fixture covers both accepted networks,
// an out-of-scope station, and a malformed result so every report counter is
// exercised.
//
// Usage:
//
//	go run ./cmd/gensample -out sample.xlsx
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/station-report-service/internal/adapter/xlsx"
	"github.com/couchcryptid/station-report-service/internal/domain"
)

func main() {
	out := flag.String("out", "sample.xlsx", "output path for the sample workbook")
	flag.Parse()

	if err := run(*out); err != nil {
		log.Fatal(err)
	}
}

func run(out string) error {
	table := domain.Table{
		Columns: []string{"Station_ID", "PCode", "Date_Time", "Result"},
		Rows: [][]string{
			{"TUS001", "P01", "2024-01-01 08:00:00", "10.5"},
			{"TUS001", "P02", "2024-01-01 08:00:00", "20.3"},
			{"TUS001", "P03", "2024-01-01 08:00:00", "15.7"},
			{"TUS001", "P01", "2024-01-02 08:00:00", "11.2"},
			{"CT-EAST", "P01", "2024-01-01 08:00:00", "12.1"},
			{"CT-EAST", "P02", "2024-01-01 08:00:00", "18.9"},
			{"CT-EAST", "P03", "2024-01-02 08:00:00", "22.4"},
			{"RIVER-9", "P01", "2024-01-01 08:00:00", "7.5"},
			{"TUS002", "P01", "2024-01-01 08:00:00", "N/A"},
		},
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := xlsx.WriteTable(f, table); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d rows\n", out, len(table.Rows))
	return nil
}
