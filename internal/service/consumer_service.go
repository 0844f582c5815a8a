package service

import (
	"context"
	"encoding/json"
	"time"

	"care-intake-be/internal/dto"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventSink receives every event that crosses the in-process bus.
// The NATS publisher and the websocket hub both implement it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sinks     []EventSink
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
	sinks ...EventSink,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sinks:     sinks,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal event", map[string]interface{}{"error": err, "message_id": msg.UUID})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, payload.OccurredAt)
	if err != nil {
		occurredAt = time.Now().UTC()
	}

	event := events.BaseEvent{
		Type:       payload.Type,
		Data:       payload.Data,
		OccurredAt: occurredAt,
	}

	cs.logger.Info("ConsumerService", "Dispatching event", map[string]interface{}{"type": event.Type, "message_id": msg.UUID})

	// Sinks are best-effort; one failing sink must not starve the others
	for _, sink := range cs.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Event sink failed", map[string]interface{}{"type": event.Type, "error": err.Error()})
		}
	}

	msg.Ack()
}
