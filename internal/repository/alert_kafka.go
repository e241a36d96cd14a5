package repository

import (
	"context"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	drepo "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
	xkafka "github.com/shashankreddy3k/inventory-forecast-app/pkg/kafka"
)

// KafkaAlertPublisher emits restock alerts to a Kafka topic, keyed by
// sub-category so alerts for one sub-category stay ordered.
type KafkaAlertPublisher struct {
	producer *xkafka.Producer
	topic    string
}

// NewKafkaAlertPublisher creates a Kafka-backed alert publisher.
func NewKafkaAlertPublisher(producer *xkafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, alerts []models.RestockAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	msgs := make([]xkafka.Message, 0, len(alerts))
	for _, a := range alerts {
		msgs = append(msgs, xkafka.Message{
			Key:   []byte(a.Subcategory),
			Value: a,
		})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

// Close closes the underlying producer.
func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}

// NoopAlertPublisher drops all alerts. Used when alerting is disabled.
type NoopAlertPublisher struct{}

func (NoopAlertPublisher) Publish(context.Context, []models.RestockAlert) error { return nil }

func (NoopAlertPublisher) Close() error { return nil }

var (
	_ drepo.AlertPublisher = (*KafkaAlertPublisher)(nil)
	_ drepo.AlertPublisher = NoopAlertPublisher{}
)
