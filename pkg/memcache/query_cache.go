// pkg/memcache/query_cache.go
package mem

import (
	"sync"
	"time"
)

// QueryCache memoizes read results keyed by (operation, canonical args) for
// one request lifecycle. The TTL is short on purpose: it collapses repeated
// identical queries inside a render, it is not a content cache.
type QueryCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Invalidate(prefix string)
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

type queryCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]cacheEntry
}

func NewQueryCache(ttl time.Duration) QueryCache {
	return &queryCache{
		ttl:  ttl,
		data: make(map[string]cacheEntry),
	}
}

func (c *queryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *queryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops every entry whose key starts with prefix. Admin writes call
// this so stale pages never outlive a mutation by more than the check itself.
func (c *queryCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.data, k)
		}
	}
}
