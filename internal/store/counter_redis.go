package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/todo-ratelimit/internal/ratelimit"
)

// incrementScript sets the expiry only when INCR created the key, so later
// increments in the same window never extend its lifetime.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// CounterRedisStore is a Redis implementation of ratelimit.Store shared by every
// server instance pointing at the same Redis.
type CounterRedisStore struct {
	client redis.UniversalClient
}

// NewCounterRedisStore creates a new Redis-backed counter store.
func NewCounterRedisStore(client redis.UniversalClient) *CounterRedisStore {
	return &CounterRedisStore{client: client}
}

func (r *CounterRedisStore) IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := incrementScript.Run(ctx, r.client, []string{key}, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, unavailable(err)
	}

	return count, nil
}

func (r *CounterRedisStore) Read(ctx context.Context, key string) (int64, bool, error) {
	count, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}

		return 0, false, unavailable(err)
	}

	return count, true, nil
}

// Ping checks Redis connectivity.
func (r *CounterRedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}

	return nil
}

// Close closes the underlying client.
func (r *CounterRedisStore) Close() error {
	return r.client.Close()
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ratelimit.ErrStoreUnavailable, err)
}

// Compile-time check.
var _ ratelimit.Store = (*CounterRedisStore)(nil)
