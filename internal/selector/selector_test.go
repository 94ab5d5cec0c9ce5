package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

func testCatalog() []models.FacetEntry {
	return []models.FacetEntry{
		{
			ID:          "fam-1",
			DisplayName: "iPhone 17",
			RAM:         "8GB",
			SubEntries: []models.SubEntry{
				{ID: "sub-1", Storage: "256GB", Color: "Black"},
				{ID: "sub-2", Storage: "256GB", Color: "White"},
				{ID: "sub-3", Storage: "512GB", Color: "Black"},
			},
		},
		{
			ID:          "fam-2",
			DisplayName: "Galaxy S25",
			Storage:     "128GB",
			Color:       "Gray",
		},
		{
			ID:          "fam-3",
			DisplayName: "Pixel 10",
		},
	}
}

func globalStorages() []models.Option {
	return []models.Option{
		{ID: "st-1", Title: "128GB"},
		{ID: "st-2", Title: "256GB"},
		{ID: "st-3", Title: "512GB"},
	}
}

func titles(options []models.Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Title)
	}
	return out
}

func TestStorageOptionsPreferSubEntries(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1"})

	assert.Equal(t, []string{"256GB", "512GB"}, titles(s.StorageOptions()))
}

func TestStorageOptionsTopLevelFallbackWithoutSubEntries(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-2"})

	assert.Equal(t, []string{"128GB"}, titles(s.StorageOptions()))
}

func TestStorageOptionsFallBackToAllStorages(t *testing.T) {
	// fam-3 has no sub-entries and no top-level storage: the whole global
	// list is offered so the operator is never blocked.
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-3"})

	assert.Equal(t, []string{"128GB", "256GB", "512GB"}, titles(s.StorageOptions()))
}

func TestStorageOptionsEmptyWithoutModelSelection(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	assert.Empty(t, s.StorageOptions())
}

func TestColorOptionsAreStorageGated(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1"})
	s.SetStorages([]string{"512GB"})

	// Only sub-3 matches 512GB; White exists only under 256GB.
	assert.Equal(t, []string{"Black"}, titles(s.ColorOptions()))

	s.SetStorages([]string{"256GB", "512GB"})
	assert.Equal(t, []string{"Black", "White"}, titles(s.ColorOptions()))
}

func TestColorOptionsTopLevelRespectsSelectedStorage(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-2"})
	s.SetStorages([]string{"256GB"})

	// fam-2's top-level storage is 128GB, not selected, so Gray is excluded.
	assert.Empty(t, titles(s.ColorOptions()))

	s.SetStorages([]string{"128GB"})
	assert.Equal(t, []string{"Gray"}, titles(s.ColorOptions()))
}

func TestChangingModelsClearsDownstreamSelections(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1"})
	s.SetStorages([]string{"256GB"})
	s.SetColors([]string{"Black"})

	s.SetModels([]string{"fam-2"})
	sel := s.Selection()
	assert.Empty(t, sel.Storages)
	assert.Empty(t, sel.Colors)
}

func TestChangingStoragesClearsColorsOnly(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1"})
	s.SetStorages([]string{"256GB"})
	s.SetColors([]string{"Black"})

	s.SetStorages([]string{"512GB"})
	sel := s.Selection()
	assert.Equal(t, []string{"fam-1"}, sel.Models)
	assert.Empty(t, sel.Colors)

	s.SetStorages([]string{"256GB"})
	s.SetColors([]string{"White"})
	sel = s.Selection()
	assert.Equal(t, []string{"256GB"}, sel.Storages)
	assert.Equal(t, []string{"White"}, sel.Colors)
}

func TestDescriptorsCartesianCount(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1", "fam-2"})
	s.SetStorages([]string{"128GB", "256GB", "512GB"})
	s.SetColors([]string{"Black", "White"})

	assert.Len(t, s.Descriptors(), 2*3*2)
}

func TestDescriptorsEmptyWhenAnySelectionEmpty(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1"})
	s.SetStorages([]string{"256GB"})
	assert.Empty(t, s.Descriptors())

	s.SetColors([]string{"Black"})
	assert.NotEmpty(t, s.Descriptors())

	s.SetModels(nil)
	assert.Empty(t, s.Descriptors())
}

func TestDescriptorsScenarioSingleModelTwoColors(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1"})
	s.SetStorages([]string{"256GB"})
	s.SetColors([]string{"Black", "White"})

	descriptors := s.Descriptors()
	require.Len(t, descriptors, 2)
	for _, d := range descriptors {
		assert.Equal(t, "iPhone 17", d.ModelName)
		assert.Equal(t, "256GB", d.Storage)
		assert.Equal(t, "8GB", d.RAM)
	}
	assert.Equal(t, "Black", descriptors[0].Color)
	assert.Equal(t, "White", descriptors[1].Color)
	assert.Equal(t, "sub-1", descriptors[0].SubFamilyID)
	assert.Equal(t, "sub-2", descriptors[1].SubFamilyID)
}

func TestDescriptorsOrderModelsOuterColorsInner(t *testing.T) {
	s := New(testCatalog(), globalStorages(), models.Selection{})
	s.SetModels([]string{"fam-1", "fam-2"})
	s.SetStorages([]string{"256GB", "512GB"})
	s.SetColors([]string{"Black", "White"})

	descriptors := s.Descriptors()
	require.Len(t, descriptors, 8)
	assert.Equal(t, "fam-1", descriptors[0].FamilyID)
	assert.Equal(t, "256GB", descriptors[0].Storage)
	assert.Equal(t, "Black", descriptors[0].Color)
	assert.Equal(t, "White", descriptors[1].Color)
	assert.Equal(t, "512GB", descriptors[2].Storage)
	assert.Equal(t, "fam-2", descriptors[4].FamilyID)
}

func TestOptionsDedupedByTitleAndSorted(t *testing.T) {
	catalog := []models.FacetEntry{
		{ID: "a", DisplayName: "A", SubEntries: []models.SubEntry{
			{ID: "a1", Storage: "64GB"},
			{ID: "a2", Storage: "64GB"},
			{ID: "a3", Storage: "32GB"},
		}},
	}
	s := New(catalog, nil, models.Selection{})
	s.SetModels([]string{"a"})

	assert.Equal(t, []string{"32GB", "64GB"}, titles(s.StorageOptions()))
}
