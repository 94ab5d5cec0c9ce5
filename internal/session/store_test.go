package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"listing-builder-service/internal/models"
)

func TestNewStoreFallsBackToMemoryWithoutRedis(t *testing.T) {
	store := NewStore(nil, 0)
	_, ok := store.(*memoryStore)
	assert.True(t, ok)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := &models.Session{
		ID:          uuid.New(),
		TenantID:    "tenant-1",
		VariantType: models.VariantTypeMulti,
		Rows:        []models.ListingRow{{ModelName: "iPhone 17", Sequence: 1}},
	}
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "tenant-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "iPhone 17", got.Rows[0].ModelName)
}

func TestMemoryStoreIsTenantScoped(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := &models.Session{ID: uuid.New(), TenantID: "tenant-1"}
	require.NoError(t, store.Put(ctx, sess))

	_, err := store.Get(ctx, "tenant-2", sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := &models.Session{ID: uuid.New(), TenantID: "tenant-1"}
	require.NoError(t, store.Put(ctx, sess))
	require.NoError(t, store.Delete(ctx, "tenant-1", sess.ID))

	_, err := store.Get(ctx, "tenant-1", sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()

	sess := &models.Session{ID: uuid.New(), TenantID: "tenant-1"}
	require.NoError(t, store.Put(ctx, sess))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "tenant-1", sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
