package health

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/todo-ratelimit/internal/config"
	"github.com/serroba/todo-ratelimit/internal/ratelimit"
)

// Status values reported for the service and the counter store.
const (
	StatusOK           = "ok"
	StatusDegraded     = "degraded"
	StatusUnconfigured = "unconfigured"
	StoreHealthy       = "healthy"
	StoreUnhealthy     = "unhealthy"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// StoreChecker pings the counter store behind the limiter singleton, building it
// on first use.
func StoreChecker(limiter *ratelimit.Singleton) CheckerFunc {
	return func(ctx context.Context) error {
		inst, err := limiter.Get()
		if err != nil {
			return err
		}

		if p, ok := inst.Store.(pinger); ok {
			return p.Ping(ctx)
		}

		return nil
	}
}

// Handler handles health check operations.
type Handler struct {
	store Checker
}

// NewHandler creates a new health handler.
func NewHandler(store Checker) *Handler {
	return &Handler{store: store}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}
}

// Check reports whether the counter store is reachable. The endpoint itself
// always answers 200.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = StatusOK
	resp.Body.Store = StoreHealthy

	err := h.store.Ping(ctx)

	switch {
	case err == nil:
	case errors.Is(err, config.ErrConfigurationMissing):
		resp.Body.Status = StatusUnconfigured
		resp.Body.Store = StoreUnhealthy
	default:
		resp.Body.Status = StatusDegraded
		resp.Body.Store = StoreUnhealthy
	}

	return resp, nil
}

// RegisterRoutes registers health check routes. They are exempt from rate limiting.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
