package grid

import (
	"fmt"
	"time"

	"listing-builder-service/internal/models"
)

// Validate sweeps every row for missing required fields and collects each
// violation as a human-readable line naming the row by 1-based index. The
// sweep is advisory: the backend is the actual authority on required fields,
// and the operator may explicitly proceed despite violations.
func Validate(rows []models.ListingRow) []string {
	violations := make([]string, 0)
	for i := range rows {
		for _, col := range models.ListingColumns {
			if !col.Required {
				continue
			}
			if rows[i].Cell(col.Key) == "" {
				violations = append(violations, fmt.Sprintf("Row %d: %s is required", i+1, col.Label))
			}
		}
	}
	return violations
}

// AssignListingNumbers fills the unique listing number of every row whose
// field is still empty: prefix + timestamp + 1-based row index, unique across
// the rows of one submission. A row that already carries a number keeps it,
// which makes duplicate-then-resubmit safe.
func AssignListingNumbers(rows []models.ListingRow, prefix string, now time.Time) {
	ts := now.UnixMilli()
	for i := range rows {
		if rows[i].UniqueListingNo != "" {
			continue
		}
		rows[i].UniqueListingNo = fmt.Sprintf("%s%d-%d", prefix, ts, i+1)
	}
}
