package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryCache is the in-process L1. Values are stored as marshalled JSON so
// that Get fills the destination the same way the Redis L2 does.
type MemoryCache struct {
	store  sync.Map
	stopCh chan struct{}
	once   sync.Once
}

type memoryEntry struct {
	payload    []byte
	expiration time.Time
}

func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{stopCh: make(chan struct{})}
	go c.sweep()
	return c
}

func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	c.store.Store(key, &memoryEntry{
		payload:    payload,
		expiration: time.Now().Add(ttl),
	})
	return nil
}

func (c *MemoryCache) Get(key string, dest interface{}) error {
	value, ok := c.store.Load(key)
	if !ok {
		return ErrCacheMiss
	}

	entry := value.(*memoryEntry)
	if time.Now().After(entry.expiration) {
		c.store.Delete(key)
		return ErrCacheMiss
	}

	return json.Unmarshal(entry.payload, dest)
}

func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

func (c *MemoryCache) DeletePattern(pattern string) error {
	c.store.Range(func(key, _ interface{}) bool {
		if matchPattern(key.(string), pattern) {
			c.store.Delete(key)
		}
		return true
	})
	return nil
}

func (c *MemoryCache) Exists(key string) (bool, error) {
	value, ok := c.store.Load(key)
	if !ok {
		return false, nil
	}
	if time.Now().After(value.(*memoryEntry).expiration) {
		c.store.Delete(key)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) Stats() map[string]interface{} {
	count := 0
	c.store.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return map[string]interface{}{
		"type":  "memory",
		"items": count,
	}
}

func (c *MemoryCache) Health() error { return nil }

func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stopCh) })
	return nil
}

// sweep drops expired entries once a minute so abandoned keys do not pile up.
func (c *MemoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, value interface{}) bool {
				if now.After(value.(*memoryEntry).expiration) {
					c.store.Delete(key)
				}
				return true
			})
		case <-c.stopCh:
			return
		}
	}
}

// matchPattern supports the "*" and "prefix*" forms used by the key scheme.
func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(text, strings.TrimSuffix(pattern, "*"))
	}
	return text == pattern
}
