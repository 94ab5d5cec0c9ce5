package grid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

// completeRow returns a row with every required field filled.
func completeRow(sequence int) models.ListingRow {
	row := newRow(sequence)
	for _, col := range models.ListingColumns {
		if col.Required {
			row.SetCell(col.Key, "x")
		}
	}
	return row
}

func TestValidatePassesCompleteRows(t *testing.T) {
	rows := []models.ListingRow{completeRow(1), completeRow(2)}
	assert.Empty(t, Validate(rows))
}

func TestValidateNamesEachViolatingRowByIndex(t *testing.T) {
	rows := []models.ListingRow{completeRow(1), completeRow(2), completeRow(3)}
	rows[0].SupplierListingNumber = ""
	rows[2].SupplierListingNumber = ""

	violations := Validate(rows)
	require.Len(t, violations, 2)
	assert.Equal(t, "Row 1: Supplier Listing No is required", violations[0])
	assert.Equal(t, "Row 3: Supplier Listing No is required", violations[1])
}

func TestValidateCollectsEveryMissingField(t *testing.T) {
	rows := []models.ListingRow{completeRow(1)}
	rows[0].Grade = ""
	rows[0].Country = ""

	violations := Validate(rows)
	assert.Len(t, violations, 2)
}

func TestAssignListingNumbersOnlyFillsEmptyOnes(t *testing.T) {
	now := time.Now()
	rows := []models.ListingRow{completeRow(1), completeRow(2), completeRow(3)}
	rows[1].UniqueListingNo = "BLS-existing"

	AssignListingNumbers(rows, "BLS-", now)

	assert.True(t, strings.HasPrefix(rows[0].UniqueListingNo, "BLS-"))
	assert.Equal(t, "BLS-existing", rows[1].UniqueListingNo)
	assert.True(t, strings.HasPrefix(rows[2].UniqueListingNo, "BLS-"))
}

func TestAssignListingNumbersUniquePerRow(t *testing.T) {
	rows := []models.ListingRow{completeRow(1), completeRow(2), completeRow(3)}
	AssignListingNumbers(rows, "BLS-", time.Now())

	seen := make(map[string]bool)
	for _, row := range rows {
		require.NotEmpty(t, row.UniqueListingNo)
		assert.False(t, seen[row.UniqueListingNo])
		seen[row.UniqueListingNo] = true
	}
}
