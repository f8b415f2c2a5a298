// Package store holds analytics.Store implementations.
package store

import (
	"context"

	"github.com/serroba/todo-ratelimit/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs the events it receives.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) RecordVerdict(_ context.Context, event *analytics.VerdictEvent) error {
	n.logger.Info("verdict event received",
		zap.String("requestId", event.RequestID),
		zap.String("identity", event.Identity),
		zap.String("path", event.Path),
		zap.Bool("admitted", event.Admitted),
		zap.Int64("remaining", event.Remaining),
		zap.Time("at", event.At),
	)

	return nil
}
