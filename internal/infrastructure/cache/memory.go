package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dinetrack/backend/internal/domain"
)

// cleanupInterval is how often expired entries are swept.
const cleanupInterval = 10 * time.Minute

// MemoryCache is an in-memory TTL cache implementing domain.CacheRepository.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory cache with the given default TTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	if value, ok := c.store.Get(key); ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

// Set stores a value in the cache with TTL. A zero TTL uses the default.
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired.
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.store.Get(key)
	return ok, nil
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	return c.store.ItemCount()
}

// Clear removes all items from the cache.
func (c *MemoryCache) Clear() {
	c.store.Flush()
}
