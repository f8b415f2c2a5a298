package ratelimit

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// blockCache remembers identities that were denied and until when, so repeated
// requests from a blocked identity are answered without a store round trip.
// Entries never outlive one window; the LRU bound caps memory under many identities.
// A nil *blockCache is a valid, disabled cache.
type blockCache struct {
	entries *expirable.LRU[string, time.Time]
}

func newBlockCache(size int, ttl time.Duration) *blockCache {
	return &blockCache{
		entries: expirable.NewLRU[string, time.Time](size, nil, ttl),
	}
}

func (c *blockCache) get(identity string) (time.Time, bool) {
	if c == nil {
		return time.Time{}, false
	}

	return c.entries.Get(identity)
}

func (c *blockCache) add(identity string, until time.Time) {
	if c == nil {
		return
	}

	c.entries.Add(identity, until)
}
