//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/todo-ratelimit/internal/analytics"
	"github.com/serroba/todo-ratelimit/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStatsIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	prefix := "test:stats:" + uuid.NewString()
	stats := store.NewRedisStats(client, prefix, time.Minute)
	at := time.Now()

	defer client.Del(ctx, stats.TotalKey(), stats.MinuteKey(at), stats.IdentityKey("1.2.3.4"))

	for _, admitted := range []bool{true, true, false} {
		require.NoError(t, stats.RecordVerdict(ctx, &analytics.VerdictEvent{
			Identity: "1.2.3.4",
			Admitted: admitted,
			At:       at,
		}))
	}

	admitted, denied, err := stats.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), admitted)
	assert.Equal(t, int64(1), denied)

	ttl, err := client.TTL(ctx, stats.IdentityKey("1.2.3.4")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
