// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"sync"
	"time"
)

// Entry is what a limiter remembers about one origin.
type Entry struct {
	At      time.Time
	Pending bool // reserved by an in-flight request, not yet committed
}

// Cache is the backing store of a Limiter. The in-process MemoryCache is
// the only implementation today; a shared cache can be swapped in when the
// service runs on more than one instance.
type Cache interface {
	Load(key string) (Entry, bool)
	Store(key string, e Entry)
	Delete(key string)
	// Range calls fn for every entry until fn returns false. fn must not
	// call back into the cache.
	Range(fn func(key string, e Entry) bool)
	Len() int
}

type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]Entry)}
}

func (c *MemoryCache) Load(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	return e, ok
}

func (c *MemoryCache) Store(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = e
}

func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

func (c *MemoryCache) Range(fn func(key string, e Entry) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, e := range c.m {
		if !fn(k, e) {
			return
		}
	}
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
