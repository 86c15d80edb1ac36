// Package payment реализует payment processor: stateless функцию,
// триггеримую событием ORDER_CREATED. Единственный durable эффект —
// публикуемое терминальное событие; состояния между инвокациями нет,
// каждая инвокация независимо retryable её invoker-ом.
package payment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// EventPublisher определяет интерфейс публикации событий исхода оплаты
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, env events.Envelope) error
}

// Processor вычисляет исход оплаты для созданного заказа
type Processor struct {
	logger    *zap.Logger
	publisher EventPublisher
	topic     string
}

// NewProcessor создаёт новый payment processor.
// topic — топик исходов оплаты.
func NewProcessor(logger *zap.Logger, publisher EventPublisher, topic string) *Processor {
	return &Processor{
		logger:    logger,
		publisher: publisher,
		topic:     topic,
	}
}

// Handle обрабатывает один конверт. На каждый валидный ORDER_CREATED
// публикуется ровно одно терминальное событие (PAYMENT_COMPLETED или
// PAYMENT_FAILED) в payment топик, партиционированное тем же orderId и
// с тем же correlationId — корреляция проходит end-to-end без изменений.
// Любой другой тип входа — no-op, не ошибка. Ошибка публикации
// возвращается наверх: инвокация ретраится invoker-ом.
func (p *Processor) Handle(ctx context.Context, env events.Envelope) error {
	if env.Type != events.TypeOrderCreated {
		p.logger.Debug("ignoring event of other type",
			zap.String("event_type", string(env.Type)),
		)
		return nil
	}

	payload, err := env.OrderCreated()
	if err != nil {
		p.logger.Warn("ignoring malformed order created event",
			zap.Error(err),
			zap.String("correlation_id", env.CorrelationID),
		)
		return nil
	}

	// paymentId уникален per-attempt; коллизия между retry допустима,
	// потому что downstream идемпотентен по orderId, а не по paymentId
	paymentID := fmt.Sprintf("pay_%s_%d", payload.OrderID, time.Now().UnixMilli())

	var out events.Envelope
	if payload.Amount > 0 {
		out = events.NewPaymentCompleted(env.CorrelationID, payload.OrderID, paymentID)
	} else {
		out = events.NewPaymentFailed(env.CorrelationID, payload.OrderID, paymentID, "non-positive amount")
	}

	if err := p.publisher.Publish(ctx, p.topic, payload.OrderID, out); err != nil {
		return fmt.Errorf("publish payment outcome for order %s: %w", payload.OrderID, err)
	}

	p.logger.Info("payment outcome published",
		zap.String("order_id", payload.OrderID),
		zap.String("payment_id", paymentID),
		zap.String("outcome", string(out.Type)),
		zap.String("correlation_id", env.CorrelationID),
	)

	return nil
}
