// Package session stores authoring sessions: the selector state and the draft
// row grid an operator is working on. Redis is the primary backing so a
// session survives a pod restart; when Redis is unavailable the store degrades
// to process memory instead of blocking the operator.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"listing-builder-service/internal/models"
)

// DefaultTTL bounds how long an abandoned session lives in Redis.
const DefaultTTL = 4 * time.Hour

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = fmt.Errorf("session not found")

// Store is the session persistence boundary consumed by the handlers.
type Store interface {
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.Session, error)
	Put(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

// NewStore returns a Redis-backed store, or an in-memory one when no Redis
// client is configured.
func NewStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if client == nil {
		return NewMemoryStore(ttl)
	}
	return &redisStore{client: client, ttl: ttl}
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func sessionKey(tenantID string, id uuid.UUID) string {
	return fmt.Sprintf("listing-builder:session:%s:%s", tenantID, id.String())
}

func (s *redisStore) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(tenantID, id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Put(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.TenantID, sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(tenantID, id)).Err()
}

// memoryStore is the single-process fallback. Entries expire lazily on read.
type memoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	sess      models.Session
	expiresAt time.Time
}

// NewMemoryStore returns a store backed by process memory.
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryStore{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionKey(tenantID, id)]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	sess := entry.sess
	return &sess, nil
}

func (s *memoryStore) Put(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now()
	s.mu.Lock()
	s.entries[sessionKey(sess.TenantID, sess.ID)] = memoryEntry{
		sess:      *sess,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, sessionKey(tenantID, id))
	s.mu.Unlock()
	return nil
}
