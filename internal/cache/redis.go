package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the shared L2. Values are stored as JSON strings.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Set(key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.client.Set(context.Background(), key, payload, ttl).Err()
}

func (c *RedisCache) Get(key string, dest interface{}) error {
	payload, err := c.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(payload, dest)
}

func (c *RedisCache) Delete(key string) error {
	return c.client.Del(context.Background(), key).Err()
}

func (c *RedisCache) DeletePattern(pattern string) error {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) Exists(key string) (bool, error) {
	n, err := c.client.Exists(context.Background(), key).Result()
	return n > 0, err
}

func (c *RedisCache) Stats() map[string]interface{} {
	stats := map[string]interface{}{"type": "redis"}
	poolStats := c.client.PoolStats()
	stats["hits"] = poolStats.Hits
	stats["misses"] = poolStats.Misses
	stats["total_conns"] = poolStats.TotalConns
	stats["idle_conns"] = poolStats.IdleConns
	return stats
}

func (c *RedisCache) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
