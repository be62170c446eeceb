package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const tenantKeyPrefix = "fanaticos:tenant:"

// RedisTenantCache remembers tenant IDs that are known to exist.
// Only positive lookups are stored, so a deleted tenant disappears after ttl.
type RedisTenantCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTenantCache creates a cache on an existing client.
func NewRedisTenantCache(client *redis.Client, ttl time.Duration) *RedisTenantCache {
	return &RedisTenantCache{client: client, ttl: ttl}
}

// IsKnown reports whether id was marked within the ttl.
func (c *RedisTenantCache) IsKnown(ctx context.Context, id uuid.UUID) (bool, error) {
	err := c.client.Get(ctx, tenantKeyPrefix+id.String()).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("tenant cache lookup: %w", err)
	}
	return true, nil
}

// MarkKnown stores id for the configured ttl.
func (c *RedisTenantCache) MarkKnown(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Set(ctx, tenantKeyPrefix+id.String(), "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("tenant cache store: %w", err)
	}
	return nil
}

// Forget removes id from the cache.
func (c *RedisTenantCache) Forget(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, tenantKeyPrefix+id.String()).Err()
}

// InMemoryTenantCache is the single-process fallback used when redis is not configured.
type InMemoryTenantCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryTenantCache creates an empty in-process cache.
func NewInMemoryTenantCache(ttl time.Duration) *InMemoryTenantCache {
	return &InMemoryTenantCache{
		entries: make(map[uuid.UUID]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InMemoryTenantCache) IsKnown(_ context.Context, id uuid.UUID) (bool, error) {
	c.mu.RLock()
	expires, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if c.now().After(expires) {
		c.mu.Lock()
		delete(c.entries, id)
		c.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (c *InMemoryTenantCache) MarkKnown(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	c.entries[id] = c.now().Add(c.ttl)
	c.mu.Unlock()
	return nil
}

func (c *InMemoryTenantCache) Forget(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
	return nil
}
