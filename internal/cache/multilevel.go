package cache

import (
	"errors"
	"time"
)

// l1PromotionTTL bounds how long an L2 hit stays in memory.
const l1PromotionTTL = 5 * time.Minute

// MultiLevelCache reads through a memory L1 into an optional Redis L2. L2
// failures trip a circuit breaker and degrade the cache to memory-only
// instead of failing the request.
type MultiLevelCache struct {
	l1      *MemoryCache
	l2      *RedisCache
	metrics *CacheMetrics
	breaker *CircuitBreaker
}

// NewMultiLevelCache builds the cache; a nil redisCache yields a memory-only
// cache with the same interface.
func NewMultiLevelCache(redisCache *RedisCache) *MultiLevelCache {
	return &MultiLevelCache{
		l1:      NewMemoryCache(),
		l2:      redisCache,
		metrics: NewCacheMetrics(),
		breaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (c *MultiLevelCache) Set(key string, value interface{}, ttl time.Duration) error {
	if err := c.l1.Set(key, value, ttl); err != nil {
		return err
	}
	c.metrics.RecordSet()

	if c.l2 != nil {
		err := c.breaker.Execute(func() error {
			return c.l2.Set(key, value, ttl)
		})
		if err != nil {
			c.metrics.RecordError()
		}
	}
	return nil
}

func (c *MultiLevelCache) Get(key string, dest interface{}) error {
	if err := c.l1.Get(key, dest); err == nil {
		c.metrics.RecordHit()
		return nil
	}

	if c.l2 != nil {
		err := c.breaker.Execute(func() error {
			return c.l2.Get(key, dest)
		})
		if err == nil {
			c.metrics.RecordHit()
			c.l1.Set(key, dest, l1PromotionTTL)
			return nil
		}
		if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, ErrCircuitOpen) {
			c.metrics.RecordError()
		}
	}

	c.metrics.RecordMiss()
	return ErrCacheMiss
}

func (c *MultiLevelCache) Delete(key string) error {
	c.l1.Delete(key)
	c.metrics.RecordDelete()

	if c.l2 != nil {
		err := c.breaker.Execute(func() error {
			return c.l2.Delete(key)
		})
		if err != nil {
			c.metrics.RecordError()
			return err
		}
	}
	return nil
}

func (c *MultiLevelCache) DeletePattern(pattern string) error {
	c.l1.DeletePattern(pattern)

	if c.l2 != nil {
		return c.breaker.Execute(func() error {
			return c.l2.DeletePattern(pattern)
		})
	}
	return nil
}

func (c *MultiLevelCache) Exists(key string) (bool, error) {
	if ok, _ := c.l1.Exists(key); ok {
		return true, nil
	}
	if c.l2 != nil {
		return c.l2.Exists(key)
	}
	return false, nil
}

func (c *MultiLevelCache) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"l1":               c.l1.Stats(),
		"metrics":          c.metrics.GetStats(),
		"hit_rate_percent": c.metrics.HitRate(),
		"circuit_breaker":  c.breaker.GetStats(),
	}
	if c.l2 != nil {
		stats["l2"] = c.l2.Stats()
	}
	return stats
}

func (c *MultiLevelCache) Health() error {
	if c.l2 != nil {
		return c.l2.Health()
	}
	return nil
}

func (c *MultiLevelCache) Close() error {
	c.l1.Close()
	if c.l2 != nil {
		return c.l2.Close()
	}
	return nil
}

func (c *MultiLevelCache) GetMetrics() *CacheMetrics { return c.metrics }
