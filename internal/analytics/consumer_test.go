package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/serroba/todo-ratelimit/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSubscriber struct {
	msgChan chan *message.Message
	topic   string
}

func (m *mockSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	m.topic = topic

	return m.msgChan, nil
}

func (m *mockSubscriber) Close() error {
	return nil
}

type mockStore struct {
	mu     sync.Mutex
	events []*analytics.VerdictEvent
	err    error
}

func (m *mockStore) RecordVerdict(_ context.Context, event *analytics.VerdictEvent) error {
	if m.err != nil {
		return m.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return nil
}

func TestConsumer(t *testing.T) {
	t.Run("records verdict events", func(t *testing.T) {
		sub := &mockSubscriber{msgChan: make(chan *message.Message, 1)}
		store := &mockStore{}
		consumer := analytics.NewConsumer(sub, store, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		defer func() { _ = consumer.Shutdown() }()

		payload, err := json.Marshal(&analytics.VerdictEvent{
			Identity: "1.2.3.4",
			Path:     "/todos/1",
			Admitted: false,
			Limit:    2,
			At:       time.Now(),
		})
		require.NoError(t, err)

		msg := message.NewMessage(uuid.NewString(), payload)
		sub.msgChan <- msg

		select {
		case <-msg.Acked():
		case <-msg.Nacked():
			t.Fatal("message was nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ack")
		}

		store.mu.Lock()
		defer store.mu.Unlock()

		assert.Equal(t, analytics.TopicVerdicts, sub.topic)
		require.Len(t, store.events, 1)
		assert.Equal(t, "1.2.3.4", store.events[0].Identity)
		assert.False(t, store.events[0].Admitted)
	})

	t.Run("nacks when store fails", func(t *testing.T) {
		sub := &mockSubscriber{msgChan: make(chan *message.Message, 1)}
		consumer := analytics.NewConsumer(sub, &mockStore{err: errors.New("store error")}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage(uuid.NewString(), []byte(`{"identity":"anonymous"}`))
		sub.msgChan <- msg

		select {
		case <-msg.Nacked():
		case <-msg.Acked():
			t.Fatal("message should have been nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for nack")
		}
	})
}
