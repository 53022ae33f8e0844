package webhook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"homekeeper/internal/pkg/logger"
)

// DomainEvent is what the relay publishes for downstream consumers.
type DomainEvent struct {
	Event      string    `json:"event"`
	UserID     string    `json:"userId"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, ev DomainEvent) error
	Close() error
}

// KafkaPublisher writes events asynchronously; WriteMessages returns once
// the message is queued.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(ctx context.Context, brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn(ctx, "Kafka publish failed", "messages", len(messages), "error", err)
			}
		},
	}
	logger.Info(ctx, "Kafka producer initialized", "topic", topic, "brokers", brokers)
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev DomainEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.UserID + ":" + ev.Event),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
