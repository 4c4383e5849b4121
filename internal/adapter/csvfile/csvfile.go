// Package csvfile reads CSV exports into the core's in-memory Table.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/station-report-service/internal/domain"
)

// ReadTable reads CSV data into a Table. The first record is the header.
// Ragged rows are tolerated; the classifier treats missing trailing cells as
// empty fields.
func ReadTable(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return domain.Table{}, errors.New("csv input has no header row")
	}

	return domain.Table{Columns: records[0], Rows: records[1:]}, nil
}
