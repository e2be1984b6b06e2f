package bankcache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeBankKey = "otsem:bank:active"

// redisCmds is the slice of go-redis used by the cache, narrowed so tests
// can fake it with redis.NewStringResult and friends.
type redisCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis is the shared cache variant. All instances read the same key, so an
// admin switch propagates fleet-wide within one TTL instead of waiting for
// each instance's next cold start. Reads fail open to DefaultProvider.
type Redis struct {
	rdb redisCmds
	ttl time.Duration
	log *slog.Logger
}

func NewRedis(rdb redisCmds, ttl time.Duration, log *slog.Logger) *Redis {
	return &Redis{rdb: rdb, ttl: ttl, log: log}
}

func (c *Redis) ActiveBank(ctx context.Context) string {
	val, err := c.rdb.Get(ctx, activeBankKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("bank cache read failed, using default provider", "error", err)
		}
		return DefaultProvider
	}
	if val == "" {
		return DefaultProvider
	}
	return Normalize(val)
}

func (c *Redis) SetActiveBank(ctx context.Context, provider string) error {
	return c.rdb.Set(ctx, activeBankKey, Normalize(provider), c.ttl).Err()
}

// Initialized reports false on errors so the bootstrapper tries again on the
// next request rather than trusting an unreachable cache.
func (c *Redis) Initialized(ctx context.Context) bool {
	n, err := c.rdb.Exists(ctx, activeBankKey).Result()
	if err != nil {
		return false
	}
	return n > 0
}
