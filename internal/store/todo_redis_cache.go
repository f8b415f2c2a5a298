package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/todo-ratelimit/internal/todo"
)

// TodoRedisCache wraps a todo.Repository with Redis caching for reads.
type TodoRedisCache struct {
	store  todo.Repository
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewTodoRedisCache creates a new Redis-cached repository decorator.
func NewTodoRedisCache(store todo.Repository, client redis.UniversalClient, ttl time.Duration) *TodoRedisCache {
	return &TodoRedisCache{
		store:  store,
		client: client,
		prefix: "todo:",
		ttl:    ttl,
	}
}

// At returns the item at index, checking the cache first. Misses for out of
// range indexes are not cached.
func (r *TodoRedisCache) At(ctx context.Context, index int) (*todo.Todo, error) {
	if item, ok := r.getFromCache(ctx, index); ok {
		return item, nil
	}

	item, err := r.store.At(ctx, index)
	if err != nil || item == nil {
		return item, err
	}

	r.cacheTodo(ctx, index, item)

	return item, nil
}

func (r *TodoRedisCache) key(index int) string {
	return r.prefix + strconv.Itoa(index)
}

func (r *TodoRedisCache) getFromCache(ctx context.Context, index int) (*todo.Todo, bool) {
	payload, err := r.client.Get(ctx, r.key(index)).Bytes()
	if err != nil {
		return nil, false
	}

	var item todo.Todo
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, false
	}

	return &item, true
}

func (r *TodoRedisCache) cacheTodo(ctx context.Context, index int, item *todo.Todo) {
	payload, err := json.Marshal(item)
	if err != nil {
		return
	}

	_ = r.client.Set(ctx, r.key(index), payload, r.ttl).Err()
}

// Shutdown shuts down the wrapped store, if it has a Shutdown. The client is
// owned by the caller.
func (r *TodoRedisCache) Shutdown() error {
	if s, ok := r.store.(interface{ Shutdown() error }); ok {
		return s.Shutdown()
	}

	return nil
}

// Compile-time check.
var _ todo.Repository = (*TodoRedisCache)(nil)
