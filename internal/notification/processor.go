// Package notification реализует notification processor: stateless
// функцию, триггеримую событием PAYMENT_COMPLETED. Уведомление —
// best-effort побочный канал: его неуспех никогда не роняет
// консьюмацию триггерящего события.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// Processor отправляет уведомление об оплаченном заказе.
// Получатель фиксирован конфигурацией, а не берётся из заказа — это
// унаследованное упрощение исходной системы, сохранённое намеренно.
type Processor struct {
	logger    *zap.Logger
	sender    Sender
	recipient string
}

// NewProcessor создаёт новый notification processor
func NewProcessor(logger *zap.Logger, sender Sender, recipient string) *Processor {
	return &Processor{
		logger:    logger,
		sender:    sender,
		recipient: recipient,
	}
}

// Handle обрабатывает один конверт. Любой тип кроме PAYMENT_COMPLETED —
// no-op. Неуспех отправки логируется и не считается неуспехом
// инвокации (fire-and-forget побочный канал).
func (p *Processor) Handle(ctx context.Context, env events.Envelope) error {
	if env.Type != events.TypePaymentCompleted {
		p.logger.Debug("ignoring event of other type",
			zap.String("event_type", string(env.Type)),
		)
		return nil
	}

	payload, err := env.PaymentCompleted()
	if err != nil {
		p.logger.Warn("ignoring malformed payment completed event",
			zap.Error(err),
			zap.String("correlation_id", env.CorrelationID),
		)
		return nil
	}

	subject := fmt.Sprintf("Order Paid: %s", payload.OrderID)
	body := fmt.Sprintf("Payment successful. Order=%s, PaymentId=%s", payload.OrderID, payload.PaymentID)

	if err := p.sender.Send(ctx, subject, body, p.recipient); err != nil {
		// Best-effort: фиксируем неуспех, но консьюмацию не роняем
		p.logger.Error("failed to send notification",
			zap.Error(err),
			zap.String("order_id", payload.OrderID),
			zap.String("recipient", p.recipient),
			zap.String("correlation_id", env.CorrelationID),
		)
		return nil
	}

	p.logger.Info("notification sent",
		zap.String("order_id", payload.OrderID),
		zap.String("payment_id", payload.PaymentID),
		zap.String("correlation_id", env.CorrelationID),
	)

	return nil
}
