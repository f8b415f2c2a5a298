package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// AnonymousIdentity is the client identity used when the caller cannot be identified.
const AnonymousIdentity = "anonymous"

// DefaultKeyPrefix namespaces the window counters in the shared store.
const DefaultKeyPrefix = "ratelimit"

// ErrInvalidConfig is returned when a WindowConfig has a non-positive capacity or window.
var ErrInvalidConfig = errors.New("invalid rate limit config")

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Limit charges one request to identity and reports whether it is admitted.
	Limit(ctx context.Context, identity string) (Verdict, error)
}

// WindowConfig is the fixed capacity per window shared by every identity of a limiter.
type WindowConfig struct {
	Capacity int64
	Window   time.Duration
}

// Validate reports whether the config can be used to build a limiter.
func (c WindowConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}

	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, c.Window)
	}

	return nil
}

// Verdict is the outcome of a single Limit call.
type Verdict struct {
	Admitted bool
	Limit    int64
	// Remaining is the number of further requests expected to fit right now.
	Remaining int64
	// ResetAt is the start of the next fixed window.
	ResetAt time.Time
	// RetryAfter is set on denials: the earliest time the identity can be admitted
	// again, assuming no further traffic.
	RetryAfter time.Duration
}

// Option configures a SlidingWindowLimiter.
type Option func(*SlidingWindowLimiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindowLimiter) {
		l.now = now
	}
}

// WithKeyPrefix sets the namespace used for store keys.
func WithKeyPrefix(prefix string) Option {
	return func(l *SlidingWindowLimiter) {
		l.prefix = prefix
	}
}

// WithBlockCache enables a local cache of blocked identities holding at most size
// entries. A size of zero disables it.
func WithBlockCache(size int) Option {
	return func(l *SlidingWindowLimiter) {
		l.cacheSize = size
	}
}

// SlidingWindowLimiter approximates a sliding window with two fixed-window counters
// kept in a shared Store: the current window's count plus the previous window's
// count weighted by the part of it still covered by the sliding window.
type SlidingWindowLimiter struct {
	store     Store
	config    WindowConfig
	prefix    string
	now       func() time.Time
	cacheSize int
	blocked   *blockCache
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter.
func NewSlidingWindowLimiter(store Store, config WindowConfig, opts ...Option) (*SlidingWindowLimiter, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	l := &SlidingWindowLimiter{
		store:  store,
		config: config,
		prefix: DefaultKeyPrefix,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.cacheSize > 0 {
		l.blocked = newBlockCache(l.cacheSize, config.Window)
	}

	return l, nil
}

// Config returns the window configuration the limiter was built with.
func (l *SlidingWindowLimiter) Config() WindowConfig {
	return l.config
}

func (l *SlidingWindowLimiter) Limit(ctx context.Context, identity string) (Verdict, error) {
	now := l.now()
	window := l.config.Window

	index := now.UnixNano() / int64(window)
	windowStart := time.Unix(0, index*int64(window))
	resetAt := windowStart.Add(window)

	if until, ok := l.blocked.get(identity); ok && now.Before(until) {
		return l.deny(resetAt, until.Sub(now)), nil
	}

	count, err := l.store.IncrementWithExpiry(ctx, l.key(identity, index), 2*window)
	if err != nil {
		return Verdict{}, fmt.Errorf("increment window counter: %w", err)
	}

	// Best effort: a missing or unreadable previous window only loses its decaying weight.
	previous, _, err := l.store.Read(ctx, l.key(identity, index-1))
	if err != nil {
		previous = 0
	}

	elapsed := float64(now.Sub(windowStart)) / float64(window)
	estimate := WeightedEstimate(count-1, previous, elapsed)
	capacity := float64(l.config.Capacity)

	if estimate < capacity {
		remaining := int64(math.Floor(capacity - estimate - 1))

		return Verdict{
			Admitted:  true,
			Limit:     l.config.Capacity,
			Remaining: max(0, remaining),
			ResetAt:   resetAt,
		}, nil
	}

	until := l.blockedUntil(windowStart, count, previous)
	l.blocked.add(identity, until)

	return l.deny(resetAt, until.Sub(now)), nil
}

func (l *SlidingWindowLimiter) deny(resetAt time.Time, retryAfter time.Duration) Verdict {
	return Verdict{
		Limit:      l.config.Capacity,
		ResetAt:    resetAt,
		RetryAfter: max(0, retryAfter),
	}
}

// blockedUntil returns the earliest instant in the current window at which a new
// request would fit, given count requests already charged to it and previous in
// the window before. When the current window alone is full, that is the next
// window start.
func (l *SlidingWindowLimiter) blockedUntil(windowStart time.Time, count, previous int64) time.Time {
	window := l.config.Window
	free := l.config.Capacity - count

	if free <= 0 || previous == 0 {
		return windowStart.Add(window)
	}

	// Solve count + previous*(1-f) < capacity for the elapsed fraction f.
	fraction := 1 - float64(free)/float64(previous)
	if fraction <= 0 {
		return windowStart
	}

	return windowStart.Add(time.Duration(math.Ceil(fraction * float64(window))))
}

func (l *SlidingWindowLimiter) key(identity string, index int64) string {
	return l.prefix + ":" + identity + ":" + strconv.FormatInt(index, 10)
}

// WeightedEstimate interpolates the number of requests inside the sliding window:
// the current window's count plus the previous window's count scaled by the share
// of it that has not yet slid out. elapsed is the fraction of the current fixed
// window that has passed, clamped to [0, 1].
func WeightedEstimate(current, previous int64, elapsed float64) float64 {
	elapsed = math.Min(1, math.Max(0, elapsed))

	return float64(current) + float64(previous)*(1-elapsed)
}

// Compile-time check.
var _ Limiter = (*SlidingWindowLimiter)(nil)
