package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/todo-ratelimit/internal/todo"
	"go.uber.org/zap"
)

// TodoHandler serves to-do items by position.
type TodoHandler struct {
	repo   todo.Repository
	logger *zap.Logger
}

// NewTodoHandler creates a new to-do handler.
func NewTodoHandler(repo todo.Repository, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{repo: repo, logger: logger}
}

// GetTodo returns the item at position id, counting from one.
func (h *TodoHandler) GetTodo(ctx context.Context, req *GetTodoRequest) (*GetTodoResponse, error) {
	item, err := h.repo.At(ctx, req.ID-1)
	if err != nil {
		h.logger.Error("failed to load todo",
			zap.Int("id", req.ID),
			zap.String("request_id", RequestMetaFromContext(ctx).RequestID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("internal server error")
	}

	resp := &GetTodoResponse{}
	resp.Body.Todo = item

	return resp, nil
}
