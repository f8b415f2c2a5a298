package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the to-do routes. They carry no rate limit metadata,
// so the global limiter applies.
func RegisterRoutes(api huma.API, todoHandler *TodoHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-todo",
		Method:      http.MethodGet,
		Path:        "/todos/{id}",
		Summary:     "Get a to-do item",
		Description: "Returns the to-do item at the given one-based position, or null when out of range.",
		Tags:        []string{"Todos"},
	}, todoHandler.GetTodo)
}
