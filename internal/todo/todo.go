// Package todo holds the to-do items served behind the rate limiter.
package todo

import "context"

// Todo is a single to-do item.
type Todo struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Repository looks up to-do items by zero-based position.
type Repository interface {
	// At returns the item at index, or nil when index is negative or out of range.
	At(ctx context.Context, index int) (*Todo, error)
}
