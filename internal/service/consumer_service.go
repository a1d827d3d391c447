package service

import (
	"context"
	"encoding/json"
	"time"

	"trustlens-be/internal/pkg/logger"
	"trustlens-be/pkg/events"
	pktNats "trustlens-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the internal drift-event topic, logs each event and
// forwards it to NATS for external subscribers when a publisher is wired.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	natsPublisher *pktNats.Publisher // nil when NATS is not reachable
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		natsPublisher: natsPublisher,
		logger:        log,
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
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal drift event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.logger.Info("consumer", "Drift event received", payload)

	if cs.natsPublisher != nil {
		evt := events.BaseEvent{
			Type:       "DRIFT_DETECTED",
			Data:       payload,
			OccurredAt: time.Now(),
		}
		if err := cs.natsPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("consumer", "Failed to forward drift event to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
