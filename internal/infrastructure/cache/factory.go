package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TenantCache is satisfied by both cache implementations.
type TenantCache interface {
	IsKnown(ctx context.Context, id uuid.UUID) (bool, error)
	MarkKnown(ctx context.Context, id uuid.UUID) error
	Forget(ctx context.Context, id uuid.UUID) error
}

var (
	_ TenantCache = (*RedisTenantCache)(nil)
	_ TenantCache = (*InMemoryTenantCache)(nil)
)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewTenantCache returns a redis-backed cache when redis is configured and
// reachable, and an in-memory cache otherwise. The returned close function
// releases the redis client, if any.
func NewTenantCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (TenantCache, func() error) {
	noop := func() error { return nil }
	if !cfg.Enabled() {
		logger.Info("Redis not configured, using in-memory tenant cache")
		return NewInMemoryTenantCache(ttl), noop
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory tenant cache", zap.Error(err))
		return NewInMemoryTenantCache(ttl), noop
	}
	logger.Info("Using redis tenant cache", zap.String("addr", cfg.Addr()), zap.Duration("ttl", ttl))
	return NewRedisTenantCache(client, ttl), client.Close
}
