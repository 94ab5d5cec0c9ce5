package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/grid"
	"listing-builder-service/internal/models"
)

func TestWorkbookRoundTrip(t *testing.T) {
	rows := grid.Materialize(models.VariantTypeSingle, nil)
	require.NoError(t, grid.UpdateCell(rows, 0, "modelName", "iPhone 17"))
	require.NoError(t, grid.UpdateCell(rows, 0, "storage", "256GB"))
	require.NoError(t, grid.UpdateCell(rows, 0, "grade", "A+"))
	require.NoError(t, grid.UpdateCell(rows, 0, "totalQty", "50"))

	f := buildWorkbook(rows)
	defer f.Close()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	sheetRows, err := parseXLSXSheet(&buf)
	require.NoError(t, err)
	require.Len(t, sheetRows, 1)

	assert.Equal(t, "iPhone 17", sheetRows[0]["modelName"])
	assert.Equal(t, "256GB", sheetRows[0]["storage"])
	assert.Equal(t, "A+", sheetRows[0]["grade"])
	assert.Equal(t, "50", sheetRows[0]["totalQty"])
}

func TestParseCSVSheet(t *testing.T) {
	input := "modelName,storage,color\niPhone 17,256GB,Black\niPhone 17 Pro,512GB,White\n"

	rows, err := parseCSVSheet(bytes.NewReader([]byte(input)))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "iPhone 17", rows[0]["modelName"])
	assert.Equal(t, "White", rows[1]["color"])
}

func TestApplySheetRowsAppendsBeyondGrid(t *testing.T) {
	rows := grid.Materialize(models.VariantTypeSingle, nil)

	sheetRows := []map[string]string{
		{"modelName": "iPhone 17", "grade": "A"},
		{"modelName": "iPhone 17 Pro", "grade": "B"},
		{"modelName": "iPhone 17 Pro Max", "grade": "A+"},
	}

	rows = applySheetRows(rows, sheetRows)

	require.Len(t, rows, 3)
	assert.Equal(t, "iPhone 17", rows[0].ModelName)
	assert.Equal(t, "iPhone 17 Pro Max", rows[2].ModelName)
	assert.Equal(t, "A+", rows[2].Grade)
	assert.Equal(t, 3, rows[2].Sequence)
}

func TestApplySheetRowsKeepsLockedIdentity(t *testing.T) {
	descriptors := []models.VariantDescriptor{
		{FamilyID: "fam-1", ModelName: "iPhone 17", Storage: "256GB", Color: "Black"},
	}
	rows := grid.Materialize(models.VariantTypeMulti, descriptors)

	rows = applySheetRows(rows, []map[string]string{
		{"modelName": "Galaxy S26", "grade": "A"},
	})

	assert.Equal(t, "iPhone 17", rows[0].ModelName)
	assert.Equal(t, "A", rows[0].Grade)
}

func TestApplySheetRowsRecomputesDeliveryLocation(t *testing.T) {
	rows := grid.Materialize(models.VariantTypeSingle, nil)

	rows = applySheetRows(rows, []map[string]string{
		{"hkUsd": "10", "deliveryLocation": "bogus"},
	})

	assert.Equal(t, "Hong Kong", rows[0].DeliveryLocation)
}
