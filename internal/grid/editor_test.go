package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

func blankRows(n int) []models.ListingRow {
	rows := make([]models.ListingRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, newRow(i+1))
	}
	return rows
}

func TestUpdateCellComputesLocalFromUsdAndRate(t *testing.T) {
	rows := blankRows(1)
	require.NoError(t, UpdateCell(rows, 0, "hkUsd", "10"))
	require.NoError(t, UpdateCell(rows, 0, "hkXe", "7.8"))

	assert.Equal(t, "78.00", rows[0].HkHkd)
}

func TestUpdateCellComputesUsdFromLocalAndRate(t *testing.T) {
	rows := blankRows(1)
	require.NoError(t, UpdateCell(rows, 0, "hkXe", "7.8"))
	require.NoError(t, UpdateCell(rows, 0, "hkHkd", "78"))

	assert.Equal(t, "10.00", rows[0].HkUsd)
}

func TestUpdateCellComputesRateFromUsdAndLocal(t *testing.T) {
	rows := blankRows(1)
	require.NoError(t, UpdateCell(rows, 0, "dxbUsd", "3"))
	require.NoError(t, UpdateCell(rows, 0, "dxbAed", "11"))

	assert.Equal(t, "3.666667", rows[0].DxbXe)
}

func TestUpdateCellDoesNotOverwriteCompleteTriple(t *testing.T) {
	rows := blankRows(1)
	rows[0].HkUsd = "10"
	rows[0].HkXe = "7.8"
	rows[0].HkHkd = "78.00"

	require.NoError(t, UpdateCell(rows, 0, "hkUsd", "20"))

	// All three were already filled: no sibling is recomputed.
	assert.Equal(t, "7.8", rows[0].HkXe)
	assert.Equal(t, "78.00", rows[0].HkHkd)
}

func TestUpdateCellSkipsDivisionByZero(t *testing.T) {
	rows := blankRows(1)
	rows[0].HkXe = "0"
	require.NoError(t, UpdateCell(rows, 0, "hkHkd", "78"))

	assert.Empty(t, rows[0].HkUsd)
}

func TestUpdateCellMalformedNumberParsesToZero(t *testing.T) {
	rows := blankRows(1)
	rows[0].HkUsd = "abc"
	require.NoError(t, UpdateCell(rows, 0, "hkXe", "7.8"))

	assert.Equal(t, "0.00", rows[0].HkHkd)
}

func TestUpdateCellRejectsLockedIdentityField(t *testing.T) {
	rows := Materialize(models.VariantTypeMulti, []models.VariantDescriptor{
		{FamilyID: "fam-1", ModelName: "iPhone 17", Storage: "256GB", Color: "Black"},
	})

	err := UpdateCell(rows, 0, "modelName", "hand edit")
	assert.Error(t, err)
	assert.Equal(t, "iPhone 17", rows[0].ModelName)
}

func TestDeliveryLocationFromCurrentLocation(t *testing.T) {
	rows := blankRows(1)
	require.NoError(t, UpdateCell(rows, 0, "currentLocation", "Dubai"))

	assert.Equal(t, "Dubai", rows[0].DeliveryLocation)
}

func TestDeliveryLocationFromCurrencyFields(t *testing.T) {
	rows := blankRows(1)
	require.NoError(t, UpdateCell(rows, 0, "currentLocation", "Dubai"))
	require.NoError(t, UpdateCell(rows, 0, "hkUsd", "10"))

	assert.Equal(t, "Hong Kong, Dubai", rows[0].DeliveryLocation)
}

func TestDeliveryLocationRecomputedForAllRows(t *testing.T) {
	rows := blankRows(2)
	rows[1].CurrentLocation = "Hong Kong"

	// Editing row 0 runs the pass over every row.
	require.NoError(t, UpdateCell(rows, 0, "dxbAed", "100"))

	assert.Equal(t, "Dubai", rows[0].DeliveryLocation)
	assert.Equal(t, "Hong Kong", rows[1].DeliveryLocation)
}

func TestAddRowAppendsWithNextSequence(t *testing.T) {
	rows := blankRows(2)
	rows = AddRow(rows)

	require.Len(t, rows, 3)
	assert.Equal(t, 3, rows[2].Sequence)
}

func TestRemoveRowRefusesLastRow(t *testing.T) {
	rows := blankRows(1)
	rows, removed := RemoveRow(rows, 0)

	assert.False(t, removed)
	assert.Len(t, rows, 1)
}

func TestRemoveRowDeletesOne(t *testing.T) {
	rows := blankRows(3)
	rows[1].Remark = "middle"
	rows, removed := RemoveRow(rows, 1)

	assert.True(t, removed)
	require.Len(t, rows, 2)
	assert.Empty(t, rows[0].Remark)
	assert.Empty(t, rows[1].Remark)
}

func TestDuplicateRowClearsUniqueFields(t *testing.T) {
	rows := blankRows(2)
	rows[0].UniqueListingNo = "BLS-1"
	rows[0].SupplierListingNumber = "SUP-1"
	rows[0].Remark = "copy me"

	rows, err := DuplicateRow(rows, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	dup := rows[2]
	assert.Equal(t, 3, dup.Sequence)
	assert.Equal(t, "copy me", dup.Remark)
	assert.Empty(t, dup.UniqueListingNo)
	assert.Empty(t, dup.SupplierListingNumber)
}

func TestFillDownCopiesIntoNextRowOnly(t *testing.T) {
	rows := blankRows(3)
	rows[0].Grade = "A"

	FillDown(rows, 0, "grade")

	assert.Equal(t, "A", rows[1].Grade)
	assert.Empty(t, rows[2].Grade)
}

func TestFillDownNoOpOnLastRow(t *testing.T) {
	rows := blankRows(2)
	rows[1].Grade = "A"

	FillDown(rows, 1, "grade")

	assert.Empty(t, rows[0].Grade)
}

func TestFillAllBelowOverwritesEverythingBelow(t *testing.T) {
	rows := blankRows(4)
	rows[0].Packing = "keep"
	rows[1].Packing = "source"
	rows[2].Packing = "old"

	FillAllBelow(rows, 1, "packing")

	assert.Equal(t, "keep", rows[0].Packing)
	assert.Equal(t, "source", rows[1].Packing)
	assert.Equal(t, "source", rows[2].Packing)
	assert.Equal(t, "source", rows[3].Packing)
}

func TestFillAllBelowRunsDerivedRecomputation(t *testing.T) {
	rows := blankRows(3)
	rows[1].HkUsd = "10"
	rows[2].HkUsd = "10"
	rows[0].HkXe = "7.8"

	FillAllBelow(rows, 0, "hkXe")

	assert.Equal(t, "78.00", rows[1].HkHkd)
	assert.Equal(t, "78.00", rows[2].HkHkd)
}
