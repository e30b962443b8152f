package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/config"
)

// InitCache connects to Redis when an address is configured and falls back
// to the no-op client otherwise. An unreachable Redis also degrades to
// no-op: the cache is an optional dependency, never a startup failure.
func InitCache(ctx context.Context, cfg *config.Config, bs *Bootstrap) cache.Client {
	if cfg.RedisAddr == "" {
		bs.Log.Info("no cache configured, running without one")
		return cache.NewNoopClient()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		bs.Log.Warn("cache unreachable, running without one", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return cache.NewNoopClient()
	}

	bs.closers = append(bs.closers, rdb.Close)
	return cache.NewRedisClient(rdb)
}
