package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

func TestRefUnmarshalShapes(t *testing.T) {
	var entry models.RawSubEntry
	payload := `{"id":"sub-1","storage":"st-2","color":{"id":"c-1","title":"Black"},"ram":null}`
	require.NoError(t, json.Unmarshal([]byte(payload), &entry))

	assert.Equal(t, models.RefUnresolved, entry.Storage.Kind)
	assert.Equal(t, "st-2", entry.Storage.ID)
	assert.Equal(t, models.RefResolved, entry.Color.Kind)
	assert.Equal(t, "Black", entry.Color.Title)
	assert.Equal(t, models.RefAbsent, entry.RAM.Kind)
}

func TestNormalizeStorageOptionsDiscardsIncompleteEntries(t *testing.T) {
	raw := []models.Option{
		{ID: "st-1", Title: "128GB"},
		{ID: "", Title: "256GB"},
		{ID: "st-3", Title: "  "},
		{ID: "st-4", Title: " 512GB "},
	}

	options := NormalizeStorageOptions(raw)
	require.Len(t, options, 2)
	assert.Equal(t, "128GB", options[0].Title)
	assert.Equal(t, "512GB", options[1].Title)
}

func TestNormalizeEntriesResolvesStorageIDs(t *testing.T) {
	storages := []models.Option{{ID: "st-2", Title: "256GB"}}
	raw := []models.RawFacetEntry{
		{
			ID:          "fam-1",
			DisplayName: "iPhone 17",
			SubEntries: []models.RawSubEntry{
				{
					ID:      "sub-1",
					Storage: models.Ref{Kind: models.RefUnresolved, ID: "st-2"},
					Color:   models.Ref{Kind: models.RefResolved, ID: "c-1", Title: "Black"},
				},
				{
					ID:      "sub-2",
					Storage: models.Ref{Kind: models.RefUnresolved, ID: "st-unknown"},
				},
			},
		},
	}

	entries := NormalizeEntries(raw, storages)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].SubEntries, 2)
	assert.Equal(t, "256GB", entries[0].SubEntries[0].Storage)
	assert.Equal(t, "Black", entries[0].SubEntries[0].Color)
	// Unknown storage id degrades to absent rather than failing the load.
	assert.Empty(t, entries[0].SubEntries[1].Storage)
}

func TestNormalizeEntriesDropsEntriesWithoutID(t *testing.T) {
	raw := []models.RawFacetEntry{{DisplayName: "orphan"}, {ID: "fam-1", DisplayName: "kept"}}

	entries := NormalizeEntries(raw, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "fam-1", entries[0].ID)
}
