package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/todo-ratelimit/internal/todo"
)

// TodoPostgresStore is a PostgreSQL implementation of todo.Repository.
// Items are ordered by their position column.
type TodoPostgresStore struct {
	pool *pgxpool.Pool
}

// NewTodoPostgresStore creates a new PostgreSQL-backed to-do store.
func NewTodoPostgresStore(pool *pgxpool.Pool) *TodoPostgresStore {
	return &TodoPostgresStore{pool: pool}
}

func (p *TodoPostgresStore) At(ctx context.Context, index int) (*todo.Todo, error) {
	if index < 0 {
		return nil, nil
	}

	query := `
		SELECT id, user_id, title, completed
		FROM todos
		ORDER BY position
		OFFSET $1
		LIMIT 1
	`

	var item todo.Todo

	err := p.pool.QueryRow(ctx, query, index).Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &item, nil
}

// Shutdown closes the connection pool.
func (p *TodoPostgresStore) Shutdown() error {
	p.pool.Close()

	return nil
}

// Compile-time check.
var _ todo.Repository = (*TodoPostgresStore)(nil)
