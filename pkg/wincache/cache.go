// Package wincache remembers the last foreground window lookup for a short
// time so bursts of key events do not hammer the OS.
package wincache

import (
	"sync"
	"time"
)

const DefaultTTL = 250 * time.Millisecond

// Cache holds a single entry keyed by window identity. A lookup for another
// window, or after the TTL, misses.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	valid   bool
	key     K
	value   V
	fetched time.Time
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[K, V]{ttl: ttl, now: time.Now}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	if !c.valid || c.key != key || c.now().Sub(c.fetched) >= c.ttl {
		return zero, false
	}
	return c.value, true
}

func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = true
	c.key = key
	c.value = value
	c.fetched = c.now()
}

// GetOrFetch returns the cached value for key or calls fetch and caches its
// result. Errors are not cached. Concurrent misses may both call fetch.
func (c *Cache[K, V]) GetOrFetch(key K, fetch func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	c.Put(key, v)
	return v, nil
}

func (c *Cache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	c.valid = false
	c.value = zero
}
