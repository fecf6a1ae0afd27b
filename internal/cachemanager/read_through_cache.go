package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache wraps a CacheManager with a loader function that is
// consulted on misses. I is the loader's input type.
type ReadThroughCache[V any, I any] struct {
	cache           CacheManager[V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool
}

func NewReadThroughCache[V any, I any](
	cache CacheManager[V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[V, I] {
	return &ReadThroughCache[V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

func (r *ReadThroughCache[V, I]) Get(ctx context.Context, key string, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, nil
}

func (r *ReadThroughCache[V, I]) GetWithRefresh(ctx context.Context, key string, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.GetWithRefresh(ctx, key, ttl); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, nil
}

// Flush drops cached values so the next Get hits the loader again.
func (r *ReadThroughCache[V, I]) Flush(ctx context.Context) error {
	return r.cache.Flush(ctx)
}
