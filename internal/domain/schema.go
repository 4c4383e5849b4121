package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports every required column missing from an input table.
// Listing all of them at once lets whoever authored the spreadsheet fix it
// in one pass instead of resubmitting once per column.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidateSchema confirms the table exposes every required column, matching
// names case-insensitively. It is a pure check with no side effects and is
// the only pipeline stage that fails a run outright.
func ValidateSchema(t Table, required []string) error {
	var missing []string
	for _, name := range required {
		if _, ok := t.ColumnIndex(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
