// Package cache provides the small fixed-key TTL cache used by the transit
// finance landing page. Entries expire by wall-clock age checked on read;
// there is no background eviction.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     interface{}
	fetchedAt time.Time
}

type TTLCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

func New(ttl time.Duration) *TTLCache {
	return &TTLCache{ttl: ttl, entries: make(map[string]entry)}
}

// Get returns the cached value when it is younger than the TTL, otherwise it
// runs load and stores the result. Concurrent misses on the same key share a
// single load call.
func (c *TTLCache) Get(key string, load func() (interface{}, error)) (interface{}, bool, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && time.Since(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e.value, true, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && time.Since(e.fetchedAt) < c.ttl {
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()

		value, err := load()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: value, fetchedAt: time.Now()}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// Invalidate drops a key so the next read reloads.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
