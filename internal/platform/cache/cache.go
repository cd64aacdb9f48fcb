package cache

import (
	"sync"
	"time"
)

// Cache is a process-wide TTL key/value store. It is constructed once at
// startup and handed to its consumers explicitly; the clock is injected so
// expiry is testable.
type Cache struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]item
}

type item struct {
	value     any
	expiresAt time.Time
}

func New(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{now: now, items: make(map[string]item)}
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return entry.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Purge drops every expired entry. Callers with long-lived caches can run it
// periodically; Get already evicts lazily.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.items {
		if now.After(entry.expiresAt) {
			delete(c.items, key)
		}
	}
}
