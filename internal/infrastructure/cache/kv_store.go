package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/librestock/backend/internal/urlkit"
)

// KVStore is a small string key-value store for instance settings such as
// the saved connector server URL. Missing keys read as "".
type KVStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// RedisKVStore implements KVStore on Redis. Values have no TTL; they live
// until removed.
type RedisKVStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisKVStore creates a KV store with the given key prefix.
func NewRedisKVStore(client *redis.Client, keyPrefix string) *RedisKVStore {
	if keyPrefix == "" {
		keyPrefix = "settings:kv:"
	}
	return &RedisKVStore{client: client, keyPrefix: keyPrefix}
}

// GetItem reads a value; a missing key reads as ""
func (s *RedisKVStore) GetItem(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// SetItem writes a value
func (s *RedisKVStore) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes a key; deleting a missing key is not an error
func (s *RedisKVStore) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

var (
	_ KVStore   = (*RedisKVStore)(nil)
	_ urlkit.KV = (*RedisKVStore)(nil)
)

// InMemoryKVStore is a process-local KVStore for tests and deployments
// without Redis.
type InMemoryKVStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewInMemoryKVStore creates an empty in-memory store.
func NewInMemoryKVStore() *InMemoryKVStore {
	return &InMemoryKVStore{items: make(map[string]string)}
}

// GetItem reads a value; a missing key reads as ""
func (s *InMemoryKVStore) GetItem(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[key], nil
}

// SetItem writes a value
func (s *InMemoryKVStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// RemoveItem deletes a key
func (s *InMemoryKVStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

var (
	_ KVStore   = (*InMemoryKVStore)(nil)
	_ urlkit.KV = (*InMemoryKVStore)(nil)
)
