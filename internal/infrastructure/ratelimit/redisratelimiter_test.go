package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLimiter(t *testing.T) (*RedisRateLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiter(client), mr
}

func TestRedisRateLimiter_PerMinute(t *testing.T) {
	ctx := context.Background()
	limiter, _ := setupTestLimiter(t)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	limiter.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}

	config := RateLimitConfig{RequestsPerMinute: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "caller:u-1", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, err := limiter.Allow(ctx, "caller:u-1", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "caller:u-2", config)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are independent")
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	ctx := context.Background()
	limiter, _ := setupTestLimiter(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(ctx, "k", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	now = now.Add(30 * time.Second)
	allowed, err = limiter.Allow(ctx, "k", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(2 * time.Minute)
	allowed, err = limiter.Allow(ctx, "k", config)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_UsedAndReset(t *testing.T) {
	ctx := context.Background()
	limiter, _ := setupTestLimiter(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}

	config := RateLimitConfig{RequestsPerMinute: 10}
	for i := 0; i < 4; i++ {
		_, err := limiter.Allow(ctx, "k", config)
		require.NoError(t, err)
	}

	used, err := limiter.Used(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), used)

	require.NoError(t, limiter.Reset(ctx, "k"))
	used, err = limiter.Used(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestRedisRateLimiter_DeniedRequestsNotRecorded(t *testing.T) {
	ctx := context.Background()
	limiter, _ := setupTestLimiter(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}

	config := RateLimitConfig{RequestsPerMinute: 5, RequestsPerHour: 2}

	results := make([]bool, 4)
	for i := range results {
		allowed, err := limiter.Allow(ctx, "k", config)
		require.NoError(t, err)
		results[i] = allowed
	}
	assert.Equal(t, []bool{true, true, false, false}, results)

	used, err := limiter.Used(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), used, "the hour limit must not consume the minute window")
}

func TestRedisRateLimiter_NoLimits(t *testing.T) {
	limiter, mr := setupTestLimiter(t)
	mr.Close()

	allowed, err := limiter.Allow(context.Background(), "k", RateLimitConfig{})
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_Unavailable(t *testing.T) {
	limiter, mr := setupTestLimiter(t)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "k", RateLimitConfig{RequestsPerMinute: 1})
	assert.Error(t, err)
}
