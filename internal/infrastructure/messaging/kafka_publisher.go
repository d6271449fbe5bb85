package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/credsphere/loancalc-service/internal/domain/event"
	"github.com/credsphere/loancalc-service/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing domain
// events to a Kafka topic, keyed by loan id so events for one loan stay
// ordered within a partition.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given topic.
func NewKafkaEventPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serialises and sends domain events.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"tenant_id":  evt.TenantID(),
			},
		})

		p.logger.Info("publishing domain event",
			"event_type", evt.EventType(),
			"loan_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
			"topic", p.topic,
		)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish %d events: %w", len(messages), err)
	}
	return nil
}
