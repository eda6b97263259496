package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

// Cache is a named, cost-bounded cache keyed by string
type Cache[T any] struct {
	impl      *ristretto.Cache[string, T]
	cacheType string
	ttl       time.Duration
	flight    singleflight.Group
}

// New creates a new cache with the given cost function, cache type and default TTL
func New[T any](costFunc func(T) int64, cacheType string, ttl time.Duration) (*Cache[T], error) {
	impl, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters: 1e5,     // number of keys to track frequency of (100K)
		MaxCost:     1 << 24, // maximum cost of cache (16MB)
		BufferItems: 64,      // number of keys per Get buffer
		Metrics:     true,
		Cost:        costFunc,
	})
	if err != nil {
		return nil, err
	}

	return &Cache[T]{
		impl:      impl,
		cacheType: cacheType,
		ttl:       ttl,
	}, nil
}

// Get retrieves a value from the cache
func (c *Cache[T]) Get(key string) (T, bool) {
	return c.impl.Get(key)
}

// Set stores a value with the cache's default TTL. A cost of 0 defers to the cost function.
func (c *Cache[T]) Set(key string, value T, cost int64) bool {
	return c.SetWithTTL(key, value, cost, c.ttl)
}

// SetWithTTL stores a value in the cache with a specific TTL
func (c *Cache[T]) SetWithTTL(key string, value T, cost int64, ttl time.Duration) bool {
	return c.impl.SetWithTTL(key, value, cost, ttl)
}

// GetOrLoad returns the cached value for key, or calls load once for all
// concurrent callers and caches its result. Load errors are returned to
// every waiting caller and are not cached.
func (c *Cache[T]) GetOrLoad(key string, load func() (T, error)) (T, error) {
	if value, ok := c.impl.Get(key); ok {
		return value, nil
	}

	result, err, _ := c.flight.Do(key, func() (interface{}, error) {
		value, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, value, 0)
		// Make the value visible before the flight ends
		c.impl.Wait()
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Wait waits for the cache to finish processing
func (c *Cache[T]) Wait() {
	c.impl.Wait()
}

// Stats returns cache statistics for the health endpoint
func (c *Cache[T]) Stats() map[string]interface{} {
	metrics := c.impl.Metrics

	hitRate := 0.0
	totalRequests := metrics.Hits() + metrics.Misses()
	if totalRequests > 0 {
		hitRate = float64(metrics.Hits()) / float64(totalRequests) * 100
	}

	return map[string]interface{}{
		"cache_type":     c.cacheType,
		"hits":           metrics.Hits(),
		"misses":         metrics.Misses(),
		"sets":           metrics.KeysAdded(),
		"total_requests": totalRequests,
		"hit_rate":       hitRate,
		"current_items":  int64(metrics.KeysAdded() - metrics.KeysEvicted()),
		"memory_used":    metrics.CostAdded() - metrics.CostEvicted(),
	}
}
