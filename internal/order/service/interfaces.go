package service

import (
	"context"

	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository"
)

// OrderEventPublisher определяет интерфейс публикации событий заказа.
// Service зависит от интерфейса, а не от Kafka — это позволяет подменять
// publisher в тестах.
type OrderEventPublisher interface {
	// PublishOrderCreated публикует событие создания заказа с указанным
	// correlation id, партиционированное по order id
	PublishOrderCreated(ctx context.Context, correlationID string, order repository.Order) error
}
