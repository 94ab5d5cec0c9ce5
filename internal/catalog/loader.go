package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"listing-builder-service/internal/models"
)

// Source is the read side of the catalog-service consumed by the loader.
type Source interface {
	GetFacetCatalog(ctx context.Context, tenantID string) ([]models.RawFacetEntry, error)
	GetStorages(ctx context.Context, tenantID string) ([]models.Option, error)
}

// Loader fetches the model catalog and the global storage list and normalizes
// both into the shapes the selector consumes.
type Loader struct {
	source Source
	logger *logrus.Entry
}

func NewLoader(source Source, logger *logrus.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger.WithField("component", "catalog-loader"),
	}
}

// Load fetches both lists in parallel. Each fetch may fail independently: a
// failure is logged and surfaces as an empty list, never an error. The caller
// sees no options rather than an error banner.
func (l *Loader) Load(ctx context.Context, tenantID string) ([]models.FacetEntry, []models.Option) {
	var (
		wg          sync.WaitGroup
		rawEntries  []models.RawFacetEntry
		rawStorages []models.Option
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, err := l.source.GetFacetCatalog(ctx, tenantID)
		if err != nil {
			l.logger.WithError(err).Warn("Failed to load facet catalog, continuing with empty catalog")
			return
		}
		rawEntries = entries
	}()
	go func() {
		defer wg.Done()
		storages, err := l.source.GetStorages(ctx, tenantID)
		if err != nil {
			l.logger.WithError(err).Warn("Failed to load storage list, continuing with empty list")
			return
		}
		rawStorages = storages
	}()
	wg.Wait()

	storages := NormalizeStorageOptions(rawStorages)
	entries := NormalizeEntries(rawEntries, storages)
	return entries, storages
}
