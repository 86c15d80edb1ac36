package eventlog

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// PublishError возвращается при неудачной публикации события в лог.
// Критичность решает вызывающая сторона: для create-пути заказа это
// best-effort, для payment processor-а — повод для retry инвокации.
type PublishError struct {
	Topic string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish to %s: %v", e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Publisher публикует конверты событий в durable log (Kafka).
// Один Publisher пишет в несколько топиков; топик задаётся per-message,
// как в outbox dispatcher-ах.
type Publisher struct {
	logger *zap.Logger
	writer *kafka.Writer
}

// NewPublisher создаёт Publisher поверх kafka.Writer.
// Hash balancer + key=orderId дают тотальный порядок событий одного
// заказа в пределах топика. RequireAll: Publish возвращается только
// после подтверждения durability брокером.
func NewPublisher(logger *zap.Logger, brokers []string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return &Publisher{
		logger: logger,
		writer: writer,
	}
}

// Publish публикует конверт в указанный топик с указанным partition key.
// key должен быть orderId, чтобы все события одного заказа были
// упорядочены относительно друг друга.
func (p *Publisher) Publish(ctx context.Context, topic, key string, env events.Envelope) error {
	value, err := env.Encode()
	if err != nil {
		return &PublishError{Topic: topic, Err: err}
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("key", key),
			zap.String("event_type", string(env.Type)),
		)
		return &PublishError{Topic: topic, Err: err}
	}

	p.logger.Info("event published",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.String("event_type", string(env.Type)),
		zap.String("correlation_id", env.CorrelationID),
	)

	return nil
}

// Close закрывает Kafka writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
