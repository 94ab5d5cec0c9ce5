package catalog

import (
	"strings"

	"listing-builder-service/internal/models"
)

// NormalizeStorageOptions flattens the raw storage list to {id,title} pairs,
// discarding entries missing either field.
func NormalizeStorageOptions(raw []models.Option) []models.Option {
	options := make([]models.Option, 0, len(raw))
	for _, opt := range raw {
		if strings.TrimSpace(opt.ID) == "" || strings.TrimSpace(opt.Title) == "" {
			continue
		}
		options = append(options, models.Option{ID: opt.ID, Title: strings.TrimSpace(opt.Title)})
	}
	return options
}

// NormalizeEntries resolves every reference in the raw catalog once, so no
// read site downstream has to branch on the wire shape again. Unresolved
// storage ids are looked up against the global storage list; an id that
// resolves nowhere degrades to absent.
func NormalizeEntries(raw []models.RawFacetEntry, storages []models.Option) []models.FacetEntry {
	storageByID := make(map[string]string, len(storages))
	for _, s := range storages {
		storageByID[s.ID] = s.Title
	}

	entries := make([]models.FacetEntry, 0, len(raw))
	for _, re := range raw {
		if re.ID == "" {
			continue
		}
		entry := models.FacetEntry{
			ID:          re.ID,
			DisplayName: re.DisplayName,
			Storage:     resolveRef(re.Storage, storageByID),
			Color:       resolveRef(re.Color, nil),
			RAM:         resolveRef(re.RAM, nil),
		}
		for _, rs := range re.SubEntries {
			entry.SubEntries = append(entry.SubEntries, models.SubEntry{
				ID:      rs.ID,
				Code:    rs.Code,
				Storage: resolveRef(rs.Storage, storageByID),
				Color:   resolveRef(rs.Color, nil),
				RAM:     resolveRef(rs.RAM, nil),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// resolveRef collapses the tagged union to a plain title. Only storage refs
// carry a lookup table; color/ram ids without an embedded title have nothing
// to resolve against and degrade to absent.
func resolveRef(ref models.Ref, byID map[string]string) string {
	switch ref.Kind {
	case models.RefResolved:
		return strings.TrimSpace(ref.Title)
	case models.RefUnresolved:
		if byID != nil {
			return byID[ref.ID]
		}
	}
	return ""
}
