package cache

import (
	"context"
	"sync"
)

type Cache[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewCache[K comparable, V any](size int) *Cache[K, V] {
	return &Cache[K, V]{
		m: make(map[K]V, size),
	}
}

func (c *Cache[K, V]) Get(_ context.Context, k K) (V, bool) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	return v, ok
}

func (c *Cache[K, V]) Set(_ context.Context, k K, v V) {
	c.mu.Lock()
	c.m[k] = v
	c.mu.Unlock()
}

func (c *Cache[K, V]) Delete(_ context.Context, k K) {
	c.mu.Lock()
	delete(c.m, k)
	c.mu.Unlock()
}

// Toggle removes k when present and stores v otherwise. It reports whether k is
// present afterwards.
func (c *Cache[K, V]) Toggle(_ context.Context, k K, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.m[k]; ok {
		delete(c.m, k)
		return false
	}
	c.m[k] = v
	return true
}

func (c *Cache[K, V]) Keys(_ context.Context) []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	return keys
}
