package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_AllowPerMinute(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	config := RateLimitConfig{RequestsPerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow("login:10.0.0.1", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow("login:10.0.0.1", config)
	require.NoError(t, err)
	assert.False(t, allowed, "sixth request within a minute should be blocked")
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow("login:10.0.0.1", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow("login:10.0.0.2", config)
	require.NoError(t, err)
	assert.True(t, allowed, "a different client address has its own window")
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow("login:10.0.0.3", config)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow("login:10.0.0.3", config)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset("login:10.0.0.3"))

	allowed, err = limiter.Allow("login:10.0.0.3", config)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_GetRemaining(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	config := RateLimitConfig{RequestsPerMinute: 10}
	for i := 0; i < 3; i++ {
		_, err := limiter.Allow("login:10.0.0.4", config)
		require.NoError(t, err)
	}

	used, err := limiter.GetRemaining("login:10.0.0.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), used)
}
