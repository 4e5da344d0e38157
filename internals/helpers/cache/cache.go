// file: internals/helpers/cache/cache.go
package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache adalah key-value store in-process dengan TTL per entry.
// Dipakai rate limiter (window timestamps) dan cache listing/count
// yang di-invalidate setelah mutasi workflow/bulk.
//
// Konvensi key: "<topic>:<rest>", mis. "cases:list:page1" atau
// "ratelimit:<user>:<op>". InvalidateTopic menghapus satu prefix topic.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	stop  chan struct{}
}

type entry struct {
	value     any
	expiresAt time.Time // zero = tanpa expiry
}

func New(janitorInterval time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]entry),
		stop:  make(chan struct{}),
	}
	if janitorInterval > 0 {
		go c.janitor(janitorInterval)
	}
	return c
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: exp}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// InvalidateTopic hapus semua entry dengan prefix "<topic>:".
func (c *Cache) InvalidateTopic(topic string) int {
	prefix := topic + ":"
	n := 0
	c.mu.Lock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			n++
		}
	}
	c.mu.Unlock()
	return n
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Close() {
	close(c.stop)
}

func (c *Cache) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.items {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
