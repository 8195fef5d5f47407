package dailycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache stores entries in redis with a TTL of the time remaining until
// local midnight, so redis enforces the one-day validity natively and no
// explicit sweep is needed.
type RedisCache struct {
	cache *cache.Cache[string]
	now   func() time.Time
}

func NewRedisCache(client *redis.Client) *RedisCache {
	redisStore := redisstore.NewRedis(client)

	return &RedisCache{
		cache: cache.New[string](redisStore),
		now:   time.Now,
	}
}

func (c *RedisCache) Get(key string) (json.RawMessage, bool) {
	value, err := c.cache.Get(context.Background(), key)
	if err != nil {
		return nil, false
	}

	return json.RawMessage(value), true
}

func (c *RedisCache) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode cache value")
		return
	}

	expiration := untilMidnight(c.now())

	if err := c.cache.Set(context.Background(), key, string(data), store.WithExpiration(expiration)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}

func (c *RedisCache) Delete(key string) {
	if err := c.cache.Delete(context.Background(), key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to delete cache entry")
	}
}

func (c *RedisCache) Clear() {
	if err := c.cache.Clear(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to clear cache")
	}
}

// EvictStale is a no-op for redis, entries expire at midnight on their own.
func (c *RedisCache) EvictStale() int {
	return 0
}
