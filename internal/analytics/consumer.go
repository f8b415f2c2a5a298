package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/todo-ratelimit/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumer creates a consumer that records every verdict event in store.
func NewConsumer(
	subscriber message.Subscriber,
	store Store,
	logger *zap.Logger,
) *messaging.Consumer[VerdictEvent] {
	return messaging.NewConsumer(subscriber, TopicVerdicts, store.RecordVerdict, logger)
}
