package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/snova-cli/snova/internal/log"
)

const DefaultExpiration = 5 * time.Minute
const DefaultCleanupInterval = 15 * time.Minute

// NewInMemoryCacheManager initializes an in-memory cache. The name shows
// up in log lines so multiple caches can be told apart.
func NewInMemoryCacheManager[V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[V] {
	return &InMemoryCacheManager[V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// InMemoryCacheManager is the concrete implementation of the CacheManager interface
type InMemoryCacheManager[V any] struct {
	name  string
	cache *gocache.Cache
}

// Get retrieves an item from the cache by its key
func (c *InMemoryCacheManager[V]) Get(ctx context.Context, key string) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(key)
	if !found {
		return zeroValue, false
	}

	// Type assertion check to ensure the type is correct
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.name, "key", key)

		return zeroValue, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", c.name, "key", key)

	return v, true
}

// GetWithRefresh retrieves an item from the cache and, when found,
// extends its ttl by putting the item back in the cache.
func (c *InMemoryCacheManager[V]) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) (V, bool) {
	value, found := c.Get(ctx, key)
	if !found {
		return value, found
	}

	c.Set(ctx, key, value, ttl)

	return value, found
}

// Set sets a value in the cache with a key and TTL
func (c *InMemoryCacheManager[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes values from the cache by their keys
func (c *InMemoryCacheManager[V]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	for _, key := range keys {
		c.cache.Delete(key)
	}

	return nil
}

// Flush drops every cached value
func (c *InMemoryCacheManager[V]) Flush(ctx context.Context) error {
	c.cache.Flush()

	return nil
}
