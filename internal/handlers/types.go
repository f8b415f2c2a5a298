package handlers

import "github.com/serroba/todo-ratelimit/internal/todo"

// GetTodoRequest is the request for a single to-do item.
type GetTodoRequest struct {
	ID int `doc:"One-based position of the item" example:"1" path:"id"`
}

// GetTodoResponse wraps the item, which is null when the position is out of range.
type GetTodoResponse struct {
	Body struct {
		Todo *todo.Todo `doc:"The to-do item, or null" json:"todo"`
	}
}
