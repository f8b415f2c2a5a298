package store_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/todo-ratelimit/internal/analytics/store"
	"github.com/stretchr/testify/assert"
)

func TestRedisStats_Keys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	stats := store.NewRedisStats(client, "ratelimit:stats:", time.Hour)
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))

	assert.Equal(t, "ratelimit:stats:total", stats.TotalKey())
	assert.Equal(t, "ratelimit:stats:minute:202603040406", stats.MinuteKey(at))
	assert.Equal(t, "ratelimit:stats:identity:anonymous", stats.IdentityKey("anonymous"))
}
