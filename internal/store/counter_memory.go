package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/todo-ratelimit/internal/ratelimit"
)

type counter struct {
	value     int64
	expiresAt time.Time
}

// CounterMemoryStore is an in-memory implementation of ratelimit.Store.
// It is only shared within one process.
type CounterMemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time
}

// NewCounterMemoryStore creates a new in-memory counter store using the wall clock.
func NewCounterMemoryStore() *CounterMemoryStore {
	return NewCounterMemoryStoreWithClock(time.Now)
}

// NewCounterMemoryStoreWithClock creates an in-memory counter store that expires
// keys against the given clock.
func NewCounterMemoryStoreWithClock(now func() time.Time) *CounterMemoryStore {
	return &CounterMemoryStore{
		counters: make(map[string]*counter),
		now:      now,
	}
}

func (s *CounterMemoryStore) IncrementWithExpiry(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	c, ok := s.live(key, now)
	if !ok {
		c = &counter{expiresAt: now.Add(ttl)}
		s.counters[key] = c
	}

	c.value++

	return c.value, nil
}

func (s *CounterMemoryStore) Read(_ context.Context, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.live(key, s.now())
	if !ok {
		return 0, false, nil
	}

	return c.value, true, nil
}

// live returns the counter for key, dropping it if it has expired.
func (s *CounterMemoryStore) live(key string, now time.Time) (*counter, bool) {
	c, ok := s.counters[key]
	if !ok {
		return nil, false
	}

	if !now.Before(c.expiresAt) {
		delete(s.counters, key)

		return nil, false
	}

	return c, true
}

// Compile-time check.
var _ ratelimit.Store = (*CounterMemoryStore)(nil)
