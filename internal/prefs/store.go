package prefs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-service/internal/cache"
)

type Key string

const (
	KeyLanguage  Key = "language"
	KeyCurrency  Key = "currency"
	KeyAdminAuth Key = "adminAuth"
)

// KV is a string-valued store scoped by client session.
type KV interface {
	Get(ctx context.Context, sessionID string, key Key) (string, bool, error)
	Set(ctx context.Context, sessionID string, key Key, value string) error
	Delete(ctx context.Context, sessionID string, key Key) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[Key]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[Key]string)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string, key Key) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[sessionID][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID string, key Key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[sessionID]
	if !ok {
		s = make(map[Key]string, 3)
		m.data[sessionID] = s
	}
	s[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[sessionID], key)
	return nil
}

// RedisStore keeps values under prefs:{session}:{key}.
type RedisStore struct {
	rdb *cache.RedisClient
	ttl time.Duration // 0 — без истечения
}

func NewRedisStore(rdb *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(sessionID string, key Key) string {
	return fmt.Sprintf("prefs:%s:%s", sessionID, key)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string, key Key) (string, bool, error) {
	return s.rdb.Get(ctx, redisKey(sessionID, key))
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, key Key, value string) error {
	return s.rdb.Set(ctx, redisKey(sessionID, key), value, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, key Key) error {
	return s.rdb.Del(ctx, redisKey(sessionID, key))
}
