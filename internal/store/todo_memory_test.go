package store_test

import (
	"context"
	"testing"

	"github.com/serroba/todo-ratelimit/internal/store"
	"github.com/serroba/todo-ratelimit/internal/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoMemoryStore(t *testing.T) {
	items := []todo.Todo{
		{ID: 1, UserID: 1, Title: "first"},
		{ID: 2, UserID: 1, Title: "second", Completed: true},
	}
	s := store.NewTodoMemoryStore(items)

	tests := []struct {
		name  string
		index int
		want  *todo.Todo
	}{
		{name: "first item", index: 0, want: &items[0]},
		{name: "last item", index: 1, want: &items[1]},
		{name: "past the end", index: 2, want: nil},
		{name: "negative index", index: -1, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.At(context.Background(), tt.index)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("returned item is a copy", func(t *testing.T) {
		got, err := s.At(context.Background(), 0)
		require.NoError(t, err)

		got.Title = "changed"

		again, _ := s.At(context.Background(), 0)
		assert.Equal(t, "first", again.Title)
	})
}

func TestNewDefaultTodoMemoryStore(t *testing.T) {
	s, err := store.NewDefaultTodoMemoryStore()

	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())

	first, err := s.At(context.Background(), 0)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.ID)
}
