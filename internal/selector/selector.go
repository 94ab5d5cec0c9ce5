// Package selector implements the cascading variant selection: three ordered
// multi-select steps (models -> storages -> colors) whose options derive from
// the facet catalog, and the cartesian expansion of the selections into
// variant descriptors.
package selector

import (
	"sort"

	"listing-builder-service/internal/models"
)

// Selector derives options and descriptors from a catalog snapshot and the
// current selection. All derivations are pure reads of the snapshot; the
// catalog is never mutated.
type Selector struct {
	catalog  []models.FacetEntry
	storages []models.Option
	byID     map[string]*models.FacetEntry
	sel      models.Selection
}

func New(catalog []models.FacetEntry, storages []models.Option, sel models.Selection) *Selector {
	s := &Selector{
		catalog:  catalog,
		storages: storages,
		byID:     make(map[string]*models.FacetEntry, len(catalog)),
		sel:      sel,
	}
	for i := range catalog {
		s.byID[catalog[i].ID] = &catalog[i]
	}
	return s
}

// Selection returns the current selection sets.
func (s *Selector) Selection() models.Selection {
	return s.sel
}

// SetModels replaces the model selection. A stale storage or color choice must
// never silently remain attached to a new model set, so both downstream
// selections are cleared.
func (s *Selector) SetModels(ids []string) {
	s.sel.Models = ids
	s.sel.Storages = nil
	s.sel.Colors = nil
}

// SetStorages replaces the storage selection and clears the color selection.
func (s *Selector) SetStorages(titles []string) {
	s.sel.Storages = titles
	s.sel.Colors = nil
}

// SetColors replaces the color selection. Colors are the terminal step;
// nothing is cleared.
func (s *Selector) SetColors(titles []string) {
	s.sel.Colors = titles
}

// StorageOptions derives the storages available for the selected models.
// Sub-entries are the source of truth: a model's own storage counts only when
// it has no sub-entries. When no storage can be determined for any selected
// model the whole global storage list is offered, so the operator is never
// blocked from proceeding.
func (s *Selector) StorageOptions() []models.Option {
	if len(s.sel.Models) == 0 {
		return nil
	}

	collected := make([]models.Option, 0)
	for _, id := range s.sel.Models {
		entry, ok := s.byID[id]
		if !ok {
			continue
		}
		if len(entry.SubEntries) > 0 {
			for _, sub := range entry.SubEntries {
				if sub.Storage != "" {
					collected = append(collected, models.Option{ID: sub.ID, Title: sub.Storage})
				}
			}
			continue
		}
		if entry.Storage != "" {
			collected = append(collected, models.Option{ID: entry.ID, Title: entry.Storage})
		}
	}

	if len(collected) == 0 {
		collected = append(collected, s.storages...)
	}
	return dedupeAndSort(collected)
}

// ColorOptions derives the colors available for the selected models and
// storages. With sub-entries, a color is only offered when its sub-entry's
// storage is among the selected storages; without sub-entries the top-level
// color is offered when the top-level storage is absent or selected.
func (s *Selector) ColorOptions() []models.Option {
	if len(s.sel.Models) == 0 || len(s.sel.Storages) == 0 {
		return nil
	}

	selected := make(map[string]bool, len(s.sel.Storages))
	for _, t := range s.sel.Storages {
		selected[t] = true
	}

	collected := make([]models.Option, 0)
	for _, id := range s.sel.Models {
		entry, ok := s.byID[id]
		if !ok {
			continue
		}
		if len(entry.SubEntries) > 0 {
			for _, sub := range entry.SubEntries {
				if sub.Color != "" && selected[sub.Storage] {
					collected = append(collected, models.Option{ID: sub.ID, Title: sub.Color})
				}
			}
			continue
		}
		if entry.Color != "" && (entry.Storage == "" || selected[entry.Storage]) {
			collected = append(collected, models.Option{ID: entry.ID, Title: entry.Color})
		}
	}
	return dedupeAndSort(collected)
}

// Descriptors recomputes the full cartesian product of the three selections.
// The result is empty whenever any selection set is empty; otherwise its
// length is exactly |models| x |storages| x |colors|.
func (s *Selector) Descriptors() []models.VariantDescriptor {
	if len(s.sel.Models) == 0 || len(s.sel.Storages) == 0 || len(s.sel.Colors) == 0 {
		return nil
	}

	descriptors := make([]models.VariantDescriptor, 0, len(s.sel.Models)*len(s.sel.Storages)*len(s.sel.Colors))
	for _, id := range s.sel.Models {
		entry, ok := s.byID[id]
		if !ok {
			entry = &models.FacetEntry{ID: id}
		}
		for _, storage := range s.sel.Storages {
			for _, color := range s.sel.Colors {
				descriptors = append(descriptors, models.VariantDescriptor{
					FamilyID:    entry.ID,
					SubFamilyID: subFamilyFor(entry, storage, color),
					ModelName:   entry.DisplayName,
					Storage:     storage,
					Color:       color,
					RAM:         entry.RAM,
				})
			}
		}
	}
	return descriptors
}

// subFamilyFor picks the sub-entry backing one cartesian cell: an exact
// storage+color match wins, then a storage-only match.
func subFamilyFor(entry *models.FacetEntry, storage, color string) string {
	storageOnly := ""
	for _, sub := range entry.SubEntries {
		if sub.Storage != storage {
			continue
		}
		if sub.Color == color {
			return sub.ID
		}
		if storageOnly == "" {
			storageOnly = sub.ID
		}
	}
	return storageOnly
}

// dedupeAndSort deduplicates by title (the same capacity or color can be
// reachable through multiple sub-entries) and sorts alphabetically.
func dedupeAndSort(options []models.Option) []models.Option {
	seen := make(map[string]bool, len(options))
	out := make([]models.Option, 0, len(options))
	for _, opt := range options {
		if opt.Title == "" || seen[opt.Title] {
			continue
		}
		seen[opt.Title] = true
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}
