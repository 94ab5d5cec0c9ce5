package models

import (
	"time"

	"github.com/google/uuid"
)

// Selection holds the three ordered selection sets of the cascading selector.
// Models are family ids; storages and colors are titles (options deduplicate
// by title, so the title is the stable key).
type Selection struct {
	Models   []string `json:"models"`
	Storages []string `json:"storages"`
	Colors   []string `json:"colors"`
}

// Session is one authoring session: the selector state and the draft row grid.
// The catalog is a read-only snapshot fetched once when the session is
// created; it is never mutated afterwards.
type Session struct {
	ID             uuid.UUID           `json:"id"`
	TenantID       string              `json:"tenantId"`
	VariantType    VariantType         `json:"variantType"`
	Catalog        []FacetEntry        `json:"catalog"`
	StorageCatalog []Option            `json:"storageCatalog"`
	Selection      Selection           `json:"selection"`
	Descriptors    []VariantDescriptor `json:"descriptors"`
	Rows           []ListingRow        `json:"rows"`
	Focused        *FocusedCell        `json:"focused,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Draft is a saved authoring session an operator can resume later. The full
// session snapshot is stored as a JSONB payload; listings themselves are
// never persisted here - that stays with the listings collaborator.
type Draft struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    string      `json:"tenantId" gorm:"not null;index:idx_drafts_tenant_id"`
	Name        string      `json:"name" gorm:"not null"`
	VariantType VariantType `json:"variantType" gorm:"not null"`
	RowCount    int         `json:"rowCount" gorm:"not null;default:0"`
	Payload     JSON        `json:"payload" gorm:"type:jsonb"`
	CreatedBy   *string     `json:"createdBy,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName returns the table name for the Draft model
func (Draft) TableName() string {
	return "listing_drafts"
}
