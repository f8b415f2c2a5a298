package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/serroba/todo-ratelimit/internal/todo"
)

//go:embed todos.json
var defaultTodos []byte

// TodoMemoryStore serves a fixed list of to-do items.
type TodoMemoryStore struct {
	todos []todo.Todo
}

// NewTodoMemoryStore creates a store over todos. The slice is not copied.
func NewTodoMemoryStore(todos []todo.Todo) *TodoMemoryStore {
	return &TodoMemoryStore{todos: todos}
}

// NewDefaultTodoMemoryStore creates a store over the bundled to-do list.
func NewDefaultTodoMemoryStore() (*TodoMemoryStore, error) {
	var todos []todo.Todo
	if err := json.Unmarshal(defaultTodos, &todos); err != nil {
		return nil, fmt.Errorf("decode bundled todos: %w", err)
	}

	return NewTodoMemoryStore(todos), nil
}

func (m *TodoMemoryStore) At(_ context.Context, index int) (*todo.Todo, error) {
	if index < 0 || index >= len(m.todos) {
		return nil, nil
	}

	item := m.todos[index]

	return &item, nil
}

// Len returns the number of items.
func (m *TodoMemoryStore) Len() int {
	return len(m.todos)
}

// Compile-time check.
var _ todo.Repository = (*TodoMemoryStore)(nil)
