package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"listing-builder-service/internal/models"
)

// Cache TTL constants
const (
	DraftCacheTTL = 5 * time.Minute
)

// ErrDraftNotFound is returned when a draft does not exist for the tenant.
var ErrDraftNotFound = errors.New("draft not found")

// DraftsRepository persists saved authoring sessions. Listings themselves are
// never stored here; only the operator's in-progress work is.
type DraftsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewDraftsRepository(db *gorm.DB, redis *redis.Client) *DraftsRepository {
	return &DraftsRepository{db: db, redis: redis}
}

func draftCacheKey(tenantID string, id uuid.UUID) string {
	return fmt.Sprintf("listing-builder:draft:%s:%s", tenantID, id.String())
}

// Create saves a new draft from a session snapshot.
func (r *DraftsRepository) Create(tenantID, name string, createdBy string, sess *models.Session) (*models.Draft, error) {
	snapshot, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	var payload models.JSON
	if err := json.Unmarshal(snapshot, &payload); err != nil {
		return nil, fmt.Errorf("failed to build draft payload: %w", err)
	}

	draft := &models.Draft{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        name,
		VariantType: sess.VariantType,
		RowCount:    len(sess.Rows),
		Payload:     payload,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if createdBy != "" {
		draft.CreatedBy = &createdBy
	}

	if err := r.db.Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// GetByID retrieves a draft with caching.
func (r *DraftsRepository) GetByID(tenantID string, id uuid.UUID) (*models.Draft, error) {
	ctx := context.Background()
	cacheKey := draftCacheKey(tenantID, id)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var draft models.Draft
			if err := json.Unmarshal([]byte(val), &draft); err == nil {
				return &draft, nil
			}
		}
	}

	var draft models.Draft
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(&draft); err == nil {
			_ = r.redis.Set(ctx, cacheKey, data, DraftCacheTTL).Err()
		}
	}
	return &draft, nil
}

// List returns a page of drafts for the tenant, newest first.
func (r *DraftsRepository) List(tenantID string, page, limit int) ([]models.Draft, int64, error) {
	var total int64
	if err := r.db.Model(&models.Draft{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drafts []models.Draft
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&drafts).Error
	if err != nil {
		return nil, 0, err
	}
	return drafts, total, nil
}

// Delete removes a draft and invalidates its cache entry.
func (r *DraftsRepository) Delete(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Draft{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	if r.redis != nil {
		_ = r.redis.Del(context.Background(), draftCacheKey(tenantID, id)).Err()
	}
	return nil
}

// RestoreSession decodes a draft's payload back into a session snapshot.
func (r *DraftsRepository) RestoreSession(draft *models.Draft) (*models.Session, error) {
	data, err := json.Marshal(draft.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft payload: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode draft payload: %w", err)
	}
	return &sess, nil
}
