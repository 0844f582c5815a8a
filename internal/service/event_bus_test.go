package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-intake-be/internal/pkg/logger"
	"care-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelSink struct {
	received chan events.Event
	err      error
}

func (s *channelSink) Publish(_ context.Context, event events.Event) error {
	s.received <- event
	return s.err
}

func TestPublisherToConsumerRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	failing := &channelSink{received: make(chan events.Event, 1), err: errors.New("nats down")}
	healthy := &channelSink{received: make(chan events.Event, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(pubSub, "care.events", logger.NewNopLogger(), failing, healthy)
	require.NoError(t, consumer.Consume(ctx))

	occurred := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	publisher := NewPublisherService("care.events", pubSub)
	require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
		Type:       events.EventQueryLogged,
		Data:       map[string]interface{}{"query": "hello"},
		OccurredAt: occurred,
	}))

	for _, sink := range []*channelSink{failing, healthy} {
		select {
		case evt := <-sink.received:
			assert.Equal(t, events.EventQueryLogged, evt.EventType())
			assert.Equal(t, "hello", evt.Payload()["query"])
			assert.True(t, occurred.Equal(evt.Timestamp()))
		case <-time.After(2 * time.Second):
			t.Fatal("event was not delivered to every sink")
		}
	}
}
