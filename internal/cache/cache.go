package cache

import (
	"sync"
	"time"
)

// Clock lets tests control expiry instead of relying on wall time.
type Clock func() time.Time

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a small read-through cache for near-static lookup data
// (the waste-type catalog). Staleness up to the TTL is acceptable;
// writers invalidate explicitly.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   Clock
}

func New(ttl time.Duration, now Clock) *TTLCache {
	if now == nil {
		now = time.Now
	}
	return &TTLCache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   now,
	}
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}
