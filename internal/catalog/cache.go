package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched catalog snapshot is served.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache is a keyed TTL cache with an injectable clock. Concurrent misses on
// the same key share a single load. Failed loads are not cached.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry[V]
	nowFunc func() time.Time
	group   singleflight.Group
}

// NewCache creates a cache whose entries expire ttl after they were fetched.
// A nil now uses time.Now.
func NewCache[V any](ttl time.Duration, now func() time.Time) *Cache[V] {
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
		nowFunc: now,
	}
}

// Get returns the cached value if it is present and fresh.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.nowFunc().Sub(e.fetchedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, stamped with the current time.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{value: value, fetchedAt: c.nowFunc()}
}

// Invalidate drops key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// FetchedAt reports when the entry for key was stored.
func (c *Cache[V]) FetchedAt(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return e.fetchedAt, ok
}

// GetOrLoad returns the fresh cached value for key, or calls load and caches
// its result. hit reports whether the value came from the cache. The shared
// load ignores cancellation of ctx; ctx only bounds how long this caller waits.
func (c *Cache[V]) GetOrLoad(
	ctx context.Context,
	key string,
	load func(context.Context) (V, error),
) (value V, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		return res.Val.(V), false, nil
	}
}
