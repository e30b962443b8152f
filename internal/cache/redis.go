package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fintrackhq/backend/pkg/logger"
)

type redisClient struct {
	rdb *redis.Client
}

func NewRedisClient(rdb *redis.Client) *redisClient {
	return &redisClient{rdb: rdb}
}

func (c *redisClient) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.FromContext(ctx).Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (c *redisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *redisClient) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.FromContext(ctx).Warn("cache delete failed", "keys", keys, "error", err)
	}
}

// DeletePrefix removes every key under a prefix via SCAN. Slow on huge
// keyspaces; fine for per-user namespaces.
func (c *redisClient) DeletePrefix(ctx context.Context, prefix string) {
	log := logger.FromContext(ctx)
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn("cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn("cache scan failed", "prefix", prefix, "error", err)
	}
}
