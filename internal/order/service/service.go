package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/correlation"
	"github.com/SuryaTanukuT/commerce-backend/internal/events"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository"
)

// OrderService содержит бизнес-логику работы с заказами.
// Владеет жизненным циклом заказа: синхронный create-путь выставляет
// CREATED, асинхронный consumer исходов оплаты — терминальный статус.
// Других писателей статуса не существует.
type OrderService struct {
	logger    *zap.Logger
	repo      repository.OrderRepository
	publisher OrderEventPublisher
}

// NewOrderService создаёт новый экземпляр OrderService
func NewOrderService(logger *zap.Logger, repo repository.OrderRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

// CreateOrderInput содержит входные данные для создания заказа
type CreateOrderInput struct {
	UserID string
	Amount float64
}

// CreateOrder создаёт заказ в статусе CREATED и публикует ORDER_CREATED.
// Публикация — fire-and-forget относительно ответа клиенту: заказ уже
// сохранён, и create обязан вернуть успех даже если лог недоступен.
// Связь "persist + publish" eventual, не атомарная: между записью и
// событием нет общей транзакции, этот разрыв — осознанное свойство
// дизайна (см. DESIGN.md), а не баг.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (repository.Order, error) {
	if input.UserID == "" {
		return repository.Order{}, fmt.Errorf("user id is required")
	}

	order, err := s.repo.Create(ctx, input.UserID, input.Amount)
	if err != nil {
		return repository.Order{}, fmt.Errorf("create order: %w", err)
	}

	cid := correlation.FromContext(ctx)

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Float64("amount", order.Amount),
		zap.String("correlation_id", cid),
	)

	if err := s.publisher.PublishOrderCreated(ctx, cid, order); err != nil {
		// Заказ сохранён, клиент получит успех; событие потеряно до
		// восстановления брокера. Фиксируем разрыв в логе явно.
		s.logger.Error("failed to publish order created event, order persisted without event",
			zap.Error(err),
			zap.String("order_id", order.ID),
			zap.String("correlation_id", cid),
		)
	}

	return order, nil
}

// ListOrders возвращает все заказы
func (s *OrderService) ListOrders(ctx context.Context) ([]repository.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// HandlePaymentOutcome — handler consumer-а топика исходов оплаты.
// Доставка at-least-once, поэтому переход идемпотентен: безусловный set
// статуса по order id; replay того же события — no-op, состояние не
// регрессирует. Malformed payload и чужие типы событий игнорируются
// (nil — offset коммитится); ошибка хранилища возвращается наверх,
// offset не коммитится и сообщение доставляется повторно.
func (s *OrderService) HandlePaymentOutcome(ctx context.Context, env events.Envelope) error {
	switch env.Type {
	case events.TypePaymentCompleted:
		payload, err := env.PaymentCompleted()
		if err != nil {
			s.logger.Warn("ignoring malformed payment completed event",
				zap.Error(err),
				zap.String("correlation_id", env.CorrelationID),
			)
			return nil
		}

		if err := s.repo.UpdateStatus(ctx, payload.OrderID, repository.StatusPaid); err != nil {
			return fmt.Errorf("mark order %s paid: %w", payload.OrderID, err)
		}

		s.logger.Info("order updated -> PAID",
			zap.String("order_id", payload.OrderID),
			zap.String("payment_id", payload.PaymentID),
			zap.String("correlation_id", env.CorrelationID),
		)
		return nil

	case events.TypePaymentFailed:
		payload, err := env.PaymentFailed()
		if err != nil {
			s.logger.Warn("ignoring malformed payment failed event",
				zap.Error(err),
				zap.String("correlation_id", env.CorrelationID),
			)
			return nil
		}

		if err := s.repo.UpdateStatus(ctx, payload.OrderID, repository.StatusFailed); err != nil {
			return fmt.Errorf("mark order %s failed: %w", payload.OrderID, err)
		}

		s.logger.Info("order updated -> FAILED",
			zap.String("order_id", payload.OrderID),
			zap.String("payment_id", payload.PaymentID),
			zap.String("reason", payload.Reason),
			zap.String("correlation_id", env.CorrelationID),
		)
		return nil

	default:
		// Неизвестные и чужие типы — не ошибка
		s.logger.Debug("ignoring event of other type",
			zap.String("event_type", string(env.Type)),
		)
		return nil
	}
}
