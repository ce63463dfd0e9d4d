package user

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Cache remembers recently resolved email -> user id pairs so that repeated
// webhooks for the same buyer skip the auth admin API paging.
type Cache interface {
	Get(ctx context.Context, email string) (string, bool)
	Set(ctx context.Context, email, userID string)
}

type redisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger log.Logger
}

// NewRedisCache creates a resolver cache backed by Redis. Cache failures are
// logged and treated as misses so Redis outages never break webhook handling.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger log.Logger) Cache {
	return redisCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c redisCache) key(email string) string {
	return "resolver:email:" + email
}

func (c redisCache) Get(ctx context.Context, email string) (string, bool) {
	val, err := c.rdb.Get(ctx, c.key(email)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.With(ctx).Errorf("resolver cache get failed: %v", err)
		return "", false
	}
	return val, val != ""
}

func (c redisCache) Set(ctx context.Context, email, userID string) {
	if err := c.rdb.Set(ctx, c.key(email), userID, c.ttl).Err(); err != nil {
		c.logger.With(ctx).Errorf("resolver cache set failed: %v", err)
	}
}
