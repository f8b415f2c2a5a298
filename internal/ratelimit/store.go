package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable is returned when the shared counter store cannot be reached,
// times out, or rejects the credentials.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// Store defines the shared counter storage the limiter coordinates through.
type Store interface {
	// IncrementWithExpiry atomically increments the counter at key, creating it at
	// zero if absent. The ttl is applied only when the counter is created.
	// It returns the post-increment value.
	IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Read returns the counter at key. found is false when the key expired or was
	// never written.
	Read(ctx context.Context, key string) (count int64, found bool, err error)
}
