package models

import (
	"encoding/json"
	"strings"
)

// RefKind tags the three shapes a storage/color/ram reference can arrive in
// from the catalog-service: a bare id string, an embedded object, or nothing.
type RefKind string

const (
	RefAbsent     RefKind = "ABSENT"
	RefUnresolved RefKind = "UNRESOLVED"
	RefResolved   RefKind = "RESOLVED"
)

// Ref is a tagged union over the heterogeneous reference shapes in the raw
// catalog payload. It is resolved once at load time; nothing downstream
// branches on the wire shape again.
type Ref struct {
	Kind  RefKind `json:"kind"`
	ID    string  `json:"id,omitempty"`
	Title string  `json:"title,omitempty"`
}

// UnmarshalJSON accepts `"<id>"`, `{"id":...,"title":...}`, or null/absent.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*r = Ref{Kind: RefAbsent}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{Kind: RefUnresolved, ID: id}
		return nil
	}

	var obj struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.ID == "" && obj.Title == "" {
		*r = Ref{Kind: RefAbsent}
		return nil
	}
	*r = Ref{Kind: RefResolved, ID: obj.ID, Title: obj.Title}
	return nil
}

// RawFacetEntry is the catalog-service payload for one SKU family before
// normalization.
type RawFacetEntry struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"displayName"`
	Storage     Ref           `json:"storage"`
	Color       Ref           `json:"color"`
	RAM         Ref           `json:"ram"`
	SubEntries  []RawSubEntry `json:"subEntries"`
}

// RawSubEntry is one concrete variant of a SKU family in the raw payload.
type RawSubEntry struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Storage Ref    `json:"storage"`
	Color   Ref    `json:"color"`
	RAM     Ref    `json:"ram"`
}

// SubEntry is a normalized sub-entry: all references resolved to plain titles.
type SubEntry struct {
	ID      string `json:"id"`
	Code    string `json:"code,omitempty"`
	Storage string `json:"storage,omitempty"`
	Color   string `json:"color,omitempty"`
	RAM     string `json:"ram,omitempty"`
}

// FacetEntry is one sellable model definition after normalization. Sub-entries,
// when present, are the source of truth for storage/color availability; the
// top-level Storage/Color act as a fallback only when no sub-entries exist.
type FacetEntry struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Storage     string     `json:"storage,omitempty"`
	Color       string     `json:"color,omitempty"`
	RAM         string     `json:"ram,omitempty"`
	SubEntries  []SubEntry `json:"subEntries,omitempty"`
}

// Option is a plain {id,title} pair after normalization. Options are
// deduplicated by title, not id, because the same capacity or color can be
// reachable through multiple sub-entries.
type Option struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VariantDescriptor is one cell of the model x storage x color cartesian
// product, used to seed a draft listing row.
type VariantDescriptor struct {
	FamilyID    string `json:"familyId"`
	SubFamilyID string `json:"subFamilyId,omitempty"`
	ModelName   string `json:"modelName"`
	Storage     string `json:"storage"`
	Color       string `json:"color"`
	RAM         string `json:"ram,omitempty"`
}

// VariantType selects between a single blank row and one row per descriptor.
type VariantType string

const (
	VariantTypeSingle VariantType = "single"
	VariantTypeMulti  VariantType = "multi"
)

// FocusedCell tracks which grid cell is active. At most one cell is focused
// at a time; it only gates fill affordances and is never persisted with rows.
type FocusedCell struct {
	RowIndex  int    `json:"rowIndex"`
	ColumnKey string `json:"columnKey"`
}

// CountryCost is a read-only cost-by-country reference entry.
type CountryCost struct {
	Country string `json:"country"`
	Cost    string `json:"cost"`
}
