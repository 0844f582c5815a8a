package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"care-intake-be/internal/dto"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubPublishReachesClients(t *testing.T) {
	hub := startHub(t)
	client := &Client{Hub: hub, Operator: "ops", Send: make(chan []byte, 1)}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	err := hub.Publish(context.Background(), events.BaseEvent{
		Type:       events.EventQueryLogged,
		Data:       map[string]interface{}{"query": "hello"},
		OccurredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var msg dto.EventMessage
	require.NoError(t, json.Unmarshal(<-client.Send, &msg))
	assert.Equal(t, events.EventQueryLogged, msg.Type)
	assert.Equal(t, "hello", msg.Data["query"])
	assert.Equal(t, "2025-01-01T00:00:00Z", msg.OccurredAt)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startHub(t)
	slow := &Client{Hub: hub, Operator: "slow", Send: make(chan []byte)}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), events.BaseEvent{Type: events.EventTriageCompleted}))

	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-slow.Send
	assert.False(t, open)

	// A late unregister from the read pump must not double-close.
	hub.unregister <- slow
	assert.Equal(t, 0, hub.ClientCount())
}
