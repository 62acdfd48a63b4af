package middleware_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/backend/internal/middleware"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping Redis integration test")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port)})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	t.Cleanup(func() { client.Close() })
	return client
}

func TestRateLimiterEnforcesWindow(t *testing.T) {
	client := testRedis(t)
	limiter := middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     3,
		KeyPrefix: fmt.Sprintf("test:rate:%d", time.Now().UnixNano()),
	})

	ctx := context.Background()
	caller := "caller-1"

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := limiter.IsAllowed(ctx, caller)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, reset, err := limiter.IsAllowed(ctx, caller)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(time.Now()))

	// A different caller has its own window.
	allowed, _, _, err = limiter.IsAllowed(ctx, "caller-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}
