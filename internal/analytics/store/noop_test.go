package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/todo-ratelimit/internal/analytics"
	"github.com/serroba/todo-ratelimit/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoop_RecordVerdict(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	noop := store.NewNoop(zap.New(core))

	err := noop.RecordVerdict(context.Background(), &analytics.VerdictEvent{
		RequestID: "req-1",
		Identity:  "1.2.3.4",
		Path:      "/todos/1",
		Admitted:  true,
		At:        time.Now(),
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "1.2.3.4", logs.All()[0].ContextMap()["identity"])
	assert.Equal(t, true, logs.All()[0].ContextMap()["admitted"])
}
