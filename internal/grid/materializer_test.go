package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

func testDescriptors() []models.VariantDescriptor {
	return []models.VariantDescriptor{
		{FamilyID: "fam-1", SubFamilyID: "sub-1", ModelName: "iPhone 17", Storage: "256GB", Color: "Black", RAM: "8GB"},
		{FamilyID: "fam-1", SubFamilyID: "sub-2", ModelName: "iPhone 17", Storage: "256GB", Color: "White", RAM: "8GB"},
	}
}

func TestMaterializeSingleProducesOneBlankRow(t *testing.T) {
	rows := Materialize(models.VariantTypeSingle, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Sequence)
	assert.Empty(t, rows[0].ModelName)
	assert.False(t, rows[0].IdentityLocked)
}

func TestMaterializeMultiSeedsIdentityFromDescriptors(t *testing.T) {
	rows := Materialize(models.VariantTypeMulti, testDescriptors())

	require.Len(t, rows, 2)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Sequence)
		assert.Equal(t, "iPhone 17", row.ModelName)
		assert.Equal(t, "256GB", row.Storage)
		assert.Equal(t, "fam-1", row.SkuFamilyID)
		assert.True(t, row.IdentityLocked)
	}
	assert.Equal(t, "Black", rows[0].Color)
	assert.Equal(t, "White", rows[1].Color)
}

func TestMaterializeIsDestructiveReset(t *testing.T) {
	rows := Materialize(models.VariantTypeMulti, testDescriptors())
	for i := 0; i < 3; i++ {
		rows = AddRow(rows)
	}
	require.Len(t, rows, 5)
	require.NoError(t, UpdateCell(rows, 0, "remark", "will be lost"))

	rows = Materialize(models.VariantTypeSingle, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Sequence)
	assert.Empty(t, rows[0].Remark)
}

func TestMaterializeMultiWithoutDescriptorsFallsBackToBlankRow(t *testing.T) {
	rows := Materialize(models.VariantTypeMulti, nil)

	require.Len(t, rows, 1)
	assert.False(t, rows[0].IdentityLocked)
}
