package cache

import (
	"sync"
	"time"
)

// MemoryCache 进程内实现，开发与测试环境使用
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memItem
}

type memItem struct {
	value    string
	expireAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memItem)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !it.expireAt.IsZero() && time.Now().After(it.expireAt) {
		c.Del(key)
		return "", false
	}
	return it.value, true
}

func (c *MemoryCache) Set(key string, value string, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = memItem{value: value, expireAt: exp}
	c.mu.Unlock()
}

func (c *MemoryCache) Del(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
