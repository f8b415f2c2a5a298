package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/todo-ratelimit/internal/analytics"
)

const (
	fieldAdmitted = "admitted"
	fieldDenied   = "denied"
)

// RedisStats aggregates verdict counts in Redis hashes:
//
//	<prefix>:total               cumulative, never expires
//	<prefix>:minute:<yyyymmddhhmm> per-minute buckets, expire after ttl
//	<prefix>:identity:<identity>  per-identity counts, expire after ttl
type RedisStats struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStats creates a stats store writing under prefix.
func NewRedisStats(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStats {
	return &RedisStats{
		client: client,
		prefix: strings.Trim(prefix, ":"),
		ttl:    ttl,
	}
}

func (s *RedisStats) RecordVerdict(ctx context.Context, event *analytics.VerdictEvent) error {
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}

	field := fieldDenied
	if event.Admitted {
		field = fieldAdmitted
	}

	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, s.TotalKey(), field, 1)

	bucket := s.MinuteKey(at)
	pipe.HIncrBy(ctx, bucket, field, 1)
	pipe.Expire(ctx, bucket, s.ttl)

	if event.Identity != "" {
		identity := s.IdentityKey(event.Identity)
		pipe.HIncrBy(ctx, identity, field, 1)
		pipe.Expire(ctx, identity, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record verdict: %w", err)
	}

	return nil
}

// Totals returns the cumulative admitted and denied counts.
func (s *RedisStats) Totals(ctx context.Context) (admitted, denied int64, err error) {
	values, err := s.client.HMGet(ctx, s.TotalKey(), fieldAdmitted, fieldDenied).Result()
	if err != nil {
		return 0, 0, err
	}

	return toInt64(values[0]), toInt64(values[1]), nil
}

func (s *RedisStats) TotalKey() string {
	return s.prefix + ":total"
}

func (s *RedisStats) MinuteKey(at time.Time) string {
	return s.prefix + ":minute:" + at.UTC().Format("200601021504")
}

func (s *RedisStats) IdentityKey(identity string) string {
	return s.prefix + ":identity:" + identity
}

func toInt64(v any) int64 {
	str, ok := v.(string)
	if !ok {
		return 0
	}

	n, _ := strconv.ParseInt(str, 10, 64)

	return n
}
