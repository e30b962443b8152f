package cache

import (
	"context"
	"time"
)

// Client is the best-effort cache contract. Implementations never return
// errors: a backing-store failure is logged and treated as a miss or no-op,
// so callers can use the cache unconditionally. Entries are purely an
// optimization; every cached read must be reproducible from the store.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	DeletePrefix(ctx context.Context, prefix string)
}

// Key builders. Keys are namespaced per resource and per user so
// invalidation never crosses user boundaries.

func TransactionsKey(uid string) string {
	return "cache:transactions:" + uid
}

func DashboardKey(uid string) string {
	return "cache:dashboard:" + uid
}

func AuthTokenKey(token string) string {
	return "auth:" + token
}
