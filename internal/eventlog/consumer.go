package eventlog

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// Handler обрабатывает один конверт события.
// Доставка at-least-once: handler обязан быть идемпотентным под replay.
// Возврат ошибки означает "обработка не удалась, offset не коммитить" —
// сообщение будет доставлено повторно.
type Handler func(ctx context.Context, env events.Envelope) error

// Consumer — длинный pull-loop над топиком в рамках consumer group.
type Consumer struct {
	logger  *zap.Logger
	reader  *kafka.Reader
	handler Handler
}

// NewConsumer создаёт consumer для топика в рамках consumer group
func NewConsumer(logger *zap.Logger, brokers []string, groupID, topic string, handler Handler) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
		StartOffset: kafka.FirstOffset,
	})

	return &Consumer{
		logger:  logger,
		reader:  reader,
		handler: handler,
	}
}

// Start запускает consumer и блокируется до отмены контекста.
// Семантика at-least-once: FetchMessage + CommitMessages после успешной
// обработки. Malformed сообщение коммитится (poison pill не должен
// заклинить партицию), ошибка handler-а offset не коммитит.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID),
	)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer context cancelled, stopping")
				return nil
			}
			c.logger.Error("failed to fetch message from kafka", zap.Error(err))
			continue
		}

		shouldCommit := c.processMessage(ctx, m)

		if shouldCommit {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				c.logger.Error("failed to commit message offset",
					zap.Error(err),
					zap.String("topic", m.Topic),
					zap.Int("partition", m.Partition),
					zap.Int64("offset", m.Offset),
				)
				continue
			}

			c.logger.Debug("message offset committed",
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно закоммитить offset.
func (c *Consumer) processMessage(ctx context.Context, m kafka.Message) bool {
	env, err := events.Decode(m.Value)
	if err != nil {
		c.logger.Error("failed to decode event envelope",
			zap.Error(err),
			zap.String("topic", m.Topic),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
		// Коммитим malformed сообщение, чтобы не зациклиться
		return true
	}

	if err := c.handler(ctx, env); err != nil {
		// Не коммитим: сообщение должно быть доставлено повторно
		c.logger.Error("failed to handle event, offset not committed",
			zap.Error(err),
			zap.String("event_type", string(env.Type)),
			zap.String("correlation_id", env.CorrelationID),
			zap.String("topic", m.Topic),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
		return false
	}

	return true
}

// Close закрывает Kafka reader
func (c *Consumer) Close() error {
	c.logger.Info("closing kafka consumer")
	return c.reader.Close()
}
