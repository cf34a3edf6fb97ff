package profile

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisProfileKeyPrefix = "profile:"

type cachedService struct {
	inner Service
	rdc   *redis.Client
	ttl   time.Duration
}

// NewCachedService wraps a Service with a read-through Redis cache.
// Cache failures are logged and fall through to the inner lookup; the
// cache never turns a resolvable profile into a failed join.
func NewCachedService(inner Service, rdc *redis.Client, ttl time.Duration) Service {
	return &cachedService{inner: inner, rdc: rdc, ttl: ttl}
}

func (svc *cachedService) DisplayName(ctx context.Context, userID string) (string, error) {
	key := redisProfileKeyPrefix + userID

	name, err := svc.rdc.Get(ctx, key).Result()
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, redis.Nil) {
		zap.L().Warn("profile.cache_get", zap.String("user_id", userID), zap.Error(err))
	}

	name, err = svc.inner.DisplayName(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := svc.rdc.Set(ctx, key, name, svc.ttl).Err(); err != nil {
		zap.L().Warn("profile.cache_set", zap.String("user_id", userID), zap.Error(err))
	}
	return name, nil
}
