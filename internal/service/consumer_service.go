package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-travelmate-be/internal/dto"
	"ai-travelmate-be/internal/repository/unitofwork"
	"ai-travelmate-be/pkg/events"
	pktNats "ai-travelmate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains turn-completed events: bumps the session's message
// counter and mirrors the event to NATS when a publisher is wired.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
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
	var payload dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// One user message plus one bot reply per turn.
	if err := uow.ChatSessionRepository().IncrementMessageCount(ctx, payload.ChatSessionId, 2); err != nil {
		log.Printf("[ERROR] Failed to bump message count for session %s: %v", payload.ChatSessionId, err)
		msg.Nack()
		return
	}

	// Mirror to NATS for external analytics. Fire and forget.
	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "turn_completed",
			Data: map[string]interface{}{
				"chat_session_id":  payload.ChatSessionId.String(),
				"user_message_id":  payload.UserMessageId.String(),
				"bot_message_id":   payload.BotMessageId.String(),
				"intent":           payload.Intent,
				"source":           payload.Source,
				"confidence":       payload.Confidence,
				"response_time_ms": payload.ResponseTimeMs,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to mirror turn event to NATS: %v", err)
		}
	}

	msg.Ack()
}
