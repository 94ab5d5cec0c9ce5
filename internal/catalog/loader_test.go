package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

type fakeSource struct {
	entries    []models.RawFacetEntry
	storages   []models.Option
	entriesErr error
	storageErr error
}

func (f *fakeSource) GetFacetCatalog(ctx context.Context, tenantID string) ([]models.RawFacetEntry, error) {
	return f.entries, f.entriesErr
}

func (f *fakeSource) GetStorages(ctx context.Context, tenantID string) ([]models.Option, error) {
	return f.storages, f.storageErr
}

func TestLoadNormalizesBothLists(t *testing.T) {
	source := &fakeSource{
		entries: []models.RawFacetEntry{{ID: "fam-1", DisplayName: "iPhone 17"}},
		storages: []models.Option{
			{ID: "st-1", Title: "128GB"},
			{ID: "", Title: "dropped"},
		},
	}

	entries, storages := NewLoader(source, logrus.New()).Load(context.Background(), "tenant-1")
	require.Len(t, entries, 1)
	require.Len(t, storages, 1)
	assert.Equal(t, "128GB", storages[0].Title)
}

func TestLoadStorageFailureDegradesToEmptyList(t *testing.T) {
	source := &fakeSource{
		entries:    []models.RawFacetEntry{{ID: "fam-1"}},
		storageErr: errors.New("upstream down"),
	}

	entries, storages := NewLoader(source, logrus.New()).Load(context.Background(), "tenant-1")
	assert.Len(t, entries, 1)
	assert.Empty(t, storages)
}

func TestLoadCatalogFailureDegradesToEmptyCatalog(t *testing.T) {
	source := &fakeSource{
		storages:   []models.Option{{ID: "st-1", Title: "128GB"}},
		entriesErr: errors.New("upstream down"),
	}

	entries, storages := NewLoader(source, logrus.New()).Load(context.Background(), "tenant-1")
	assert.Empty(t, entries)
	assert.Len(t, storages, 1)
}
