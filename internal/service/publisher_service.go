package service

import (
	"context"
	"encoding/json"
	"time"

	"care-intake-be/internal/dto"
	"care-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(dto.EventMessage{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp().UTC().Format(time.RFC3339Nano),
		Data:       event.Payload(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)

	return ps.pubSub.Publish(ps.topicName, msg)
}
