package prices

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m3rciful/swapstream/core/logger"
)

const cacheKeyPrefix = "price:usd:"

// Cache keeps upstream quotes in Redis for a short TTL so menu refreshes and
// rate lookups do not hit the public API every time. Redis failures are
// logged and the upstream source is used directly.
type Cache struct {
	client   redis.Cmdable
	upstream Source
	ttl      time.Duration
}

// NewCache wraps upstream with a Redis cache.
func NewCache(client redis.Cmdable, upstream Source, ttl time.Duration) *Cache {
	return &Cache{client: client, upstream: upstream, ttl: ttl}
}

func cacheKey(key string) string { return cacheKeyPrefix + key }

// Prices serves what Redis has and asks upstream only for the rest.
func (c *Cache) Prices(ctx context.Context, keys []string) (map[string]Price, error) {
	out := make(map[string]Price, len(keys))
	missing := c.lookup(ctx, keys, out)
	if len(missing) == 0 {
		logger.Debug(ctx, "prices", "prices.cache", slog.String("cache", "hit"), slog.Int("coins", len(out)))
		return out, nil
	}

	fresh, err := c.upstream.Prices(ctx, missing)
	if err != nil {
		return nil, err
	}
	c.store(ctx, fresh)
	for k, p := range fresh {
		out[k] = p
	}
	logger.Debug(ctx, "prices", "prices.cache",
		slog.String("cache", "miss"),
		slog.Int("coins", len(out)),
		slog.Int("fetched", len(fresh)),
	)
	return out, nil
}

func (c *Cache) lookup(ctx context.Context, keys []string, out map[string]Price) []string {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = cacheKey(k)
	}
	vals, err := c.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		logger.Warn(ctx, "prices", "prices.cache.get", slog.String("err", err.Error()))
		return keys
	}

	var missing []string
	for i, v := range vals {
		s, ok := v.(string)
		var p Price
		if !ok || json.Unmarshal([]byte(s), &p) != nil {
			missing = append(missing, keys[i])
			continue
		}
		out[keys[i]] = p
	}
	return missing
}

func (c *Cache) store(ctx context.Context, fresh map[string]Price) {
	if len(fresh) == 0 {
		return
	}
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, p := range fresh {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			pipe.Set(ctx, cacheKey(k), data, c.ttl)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Warn(ctx, "prices", "prices.cache.set", slog.String("err", err.Error()))
	}
}
