package kafka

import (
	"context"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/eventlog"
	"github.com/SuryaTanukuT/commerce-backend/internal/events"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository"
)

// OrderCreatedPublisher реализует service.OrderEventPublisher поверх
// клиента durable log
type OrderCreatedPublisher struct {
	logger *zap.Logger
	pub    *eventlog.Publisher
	topic  string
}

// NewOrderCreatedPublisher создаёт publisher событий создания заказа
func NewOrderCreatedPublisher(logger *zap.Logger, pub *eventlog.Publisher, topic string) *OrderCreatedPublisher {
	return &OrderCreatedPublisher{
		logger: logger,
		pub:    pub,
		topic:  topic,
	}
}

// PublishOrderCreated публикует ORDER_CREATED с partition key = order id,
// чтобы все события одного заказа были тотально упорядочены в топике
func (p *OrderCreatedPublisher) PublishOrderCreated(ctx context.Context, correlationID string, order repository.Order) error {
	env := events.NewOrderCreated(correlationID, events.OrderCreatedPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.Amount,
	})

	return p.pub.Publish(ctx, p.topic, order.ID, env)
}
