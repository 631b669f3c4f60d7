package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/librestock/backend/internal/domain/settings"
)

// brandingKey is the single cache key for the branding row.
const brandingKey = "settings:branding"

// BrandingCache caches the resolved branding settings. A cache miss is
// reported as (nil, nil); the caller falls through to the database.
type BrandingCache interface {
	Get(ctx context.Context) (*settings.Branding, error)
	Set(ctx context.Context, branding *settings.Branding) error
	Invalidate(ctx context.Context) error
}

// RedisBrandingCache implements BrandingCache on Redis with a TTL.
type RedisBrandingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBrandingCache creates a branding cache with the given TTL.
func NewRedisBrandingCache(client *redis.Client, ttl time.Duration) *RedisBrandingCache {
	return &RedisBrandingCache{client: client, ttl: ttl}
}

// Get returns the cached branding, or nil on a miss
func (c *RedisBrandingCache) Get(ctx context.Context) (*settings.Branding, error) {
	raw, err := c.client.Get(ctx, brandingKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read branding cache: %w", err)
	}

	var branding settings.Branding
	if err := json.Unmarshal(raw, &branding); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.client.Del(ctx, brandingKey).Err()
		return nil, nil
	}
	return &branding, nil
}

// Set stores the branding with the configured TTL
func (c *RedisBrandingCache) Set(ctx context.Context, branding *settings.Branding) error {
	raw, err := json.Marshal(branding)
	if err != nil {
		return fmt.Errorf("failed to serialize branding: %w", err)
	}
	if err := c.client.Set(ctx, brandingKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write branding cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached branding
func (c *RedisBrandingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, brandingKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate branding cache: %w", err)
	}
	return nil
}

var _ BrandingCache = (*RedisBrandingCache)(nil)

// NoopBrandingCache is used when Redis is disabled; every read is a miss.
type NoopBrandingCache struct{}

// NewNoopBrandingCache creates a cache that never stores anything.
func NewNoopBrandingCache() *NoopBrandingCache {
	return &NoopBrandingCache{}
}

// Get always reports a miss
func (NoopBrandingCache) Get(context.Context) (*settings.Branding, error) { return nil, nil }

// Set discards the value
func (NoopBrandingCache) Set(context.Context, *settings.Branding) error { return nil }

// Invalidate does nothing
func (NoopBrandingCache) Invalidate(context.Context) error { return nil }

var _ BrandingCache = (*NoopBrandingCache)(nil)
