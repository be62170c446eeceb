package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisTenantCache(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewRedisTenantCache(client, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	known, err := c.IsKnown(ctx, id)
	require.NoError(t, err)
	assert.False(t, known)

	require.NoError(t, c.MarkKnown(ctx, id))
	known, err = c.IsKnown(ctx, id)
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, time.Minute, mr.TTL(tenantKeyPrefix+id.String()))

	mr.FastForward(2 * time.Minute)
	known, err = c.IsKnown(ctx, id)
	require.NoError(t, err)
	assert.False(t, known)

	require.NoError(t, c.MarkKnown(ctx, id))
	require.NoError(t, c.Forget(ctx, id))
	known, _ = c.IsKnown(ctx, id)
	assert.False(t, known)
}

func TestRedisTenantCache_ServerDown(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewRedisTenantCache(client, time.Minute)
	mr.Close()

	_, err := c.IsKnown(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestInMemoryTenantCache_Expiry(t *testing.T) {
	c := NewInMemoryTenantCache(time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.MarkKnown(ctx, id))
	known, _ := c.IsKnown(ctx, id)
	assert.True(t, known)

	now = now.Add(61 * time.Second)
	known, _ = c.IsKnown(ctx, id)
	assert.False(t, known)
}

func TestNewTenantCache(t *testing.T) {
	t.Run("in-memory without redis host", func(t *testing.T) {
		c, closeFn := NewTenantCache(context.Background(), config.RedisConfig{}, time.Minute, zap.NewNop())
		defer closeFn()
		assert.IsType(t, &InMemoryTenantCache{}, c)
	})

	t.Run("redis when reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)

		c, closeFn := NewTenantCache(context.Background(),
			config.RedisConfig{Host: mr.Host(), Port: port}, time.Minute, zap.NewNop())
		defer closeFn()
		assert.IsType(t, &RedisTenantCache{}, c)
	})

	t.Run("falls back when unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		host := mr.Host()
		port, _ := strconv.Atoi(mr.Port())
		mr.Close()

		c, closeFn := NewTenantCache(context.Background(),
			config.RedisConfig{Host: host, Port: port}, time.Minute, zap.NewNop())
		defer closeFn()
		assert.IsType(t, &InMemoryTenantCache{}, c)
	})
}
