package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository/memory"
)

// MockOrderEventPublisher реализует OrderEventPublisher для тестов
type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) PublishOrderCreated(ctx context.Context, correlationID string, order repository.Order) error {
	args := m.Called(ctx, correlationID, order)
	return args.Error(0)
}

func TestOrderService_CreateOrder(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	mockPublisher := new(MockOrderEventPublisher)
	mockPublisher.On("PublishOrderCreated", mock.Anything, mock.Anything, mock.MatchedBy(func(o repository.Order) bool {
		return o.UserID == "u1" && o.Amount == 42.5
	})).Return(nil).Once()

	svc := NewOrderService(logger, repo, mockPublisher)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "u1", Amount: 42.5})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, 42.5, order.Amount)
	assert.Equal(t, repository.StatusCreated, order.Status)

	mockPublisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_UserIDRequired(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	mockPublisher := new(MockOrderEventPublisher)

	svc := NewOrderService(logger, repo, mockPublisher)

	_, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "", Amount: 10})
	assert.Error(t, err)

	// Ни записи, ни события
	orders, _ := repo.FindAll(ctx)
	assert.Empty(t, orders)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishFailureIsNotFatal(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	mockPublisher := new(MockOrderEventPublisher)
	mockPublisher.On("PublishOrderCreated", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	svc := NewOrderService(logger, repo, mockPublisher)

	// Create обязан вернуть успех: публикация fire-and-forget
	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "u1", Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, repository.StatusCreated, order.Status)

	stored, ok := repo.Get(order.ID)
	require.True(t, ok)
	assert.Equal(t, repository.StatusCreated, stored.Status)

	mockPublisher.AssertExpectations(t)
}

func TestOrderService_HandlePaymentOutcome_Idempotent(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	mockPublisher := new(MockOrderEventPublisher)
	mockPublisher.On("PublishOrderCreated", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewOrderService(logger, repo, mockPublisher)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "u1", Amount: 42.5})
	require.NoError(t, err)

	env := events.NewPaymentCompleted("cid-1", order.ID, "pay_1")

	// At-least-once: то же событие доставляется дважды
	require.NoError(t, svc.HandlePaymentOutcome(ctx, env))
	require.NoError(t, svc.HandlePaymentOutcome(ctx, env))

	stored, ok := repo.Get(order.ID)
	require.True(t, ok)
	assert.Equal(t, repository.StatusPaid, stored.Status)
	// Статус не регрессировал, amount/userId не тронуты
	assert.Equal(t, 42.5, stored.Amount)
	assert.Equal(t, "u1", stored.UserID)
	// Логически состояние менялось ровно один раз
	assert.Equal(t, 1, repo.StatusChanges(order.ID))
}

func TestOrderService_HandlePaymentOutcome_Failed(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	mockPublisher := new(MockOrderEventPublisher)
	mockPublisher.On("PublishOrderCreated", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewOrderService(logger, repo, mockPublisher)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "u1", Amount: 42.5})
	require.NoError(t, err)

	env := events.NewPaymentFailed("cid-1", order.ID, "pay_1", "non-positive amount")
	require.NoError(t, svc.HandlePaymentOutcome(ctx, env))

	stored, _ := repo.Get(order.ID)
	assert.Equal(t, repository.StatusFailed, stored.Status)
}

func TestOrderService_HandlePaymentOutcome_IgnoresOtherTypes(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	mockPublisher := new(MockOrderEventPublisher)
	mockPublisher.On("PublishOrderCreated", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewOrderService(logger, repo, mockPublisher)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "u1", Amount: 42.5})
	require.NoError(t, err)

	tests := []struct {
		name string
		env  events.Envelope
	}{
		{
			name: "own order created event",
			env:  events.NewOrderCreated("cid-1", events.OrderCreatedPayload{OrderID: order.ID, UserID: "u1", Amount: 42.5}),
		},
		{
			name: "unknown type",
			env:  events.Envelope{Type: "ORDER_SHIPPED", CorrelationID: "cid-1", Payload: []byte(`{"orderId":"` + order.ID + `"}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, svc.HandlePaymentOutcome(ctx, tt.env))

			stored, _ := repo.Get(order.ID)
			assert.Equal(t, repository.StatusCreated, stored.Status)
			assert.Equal(t, 0, repo.StatusChanges(order.ID))
		})
	}
}

func TestOrderService_HandlePaymentOutcome_MalformedPayloadIgnored(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	repo := memory.NewMemoryRepository()
	svc := NewOrderService(logger, repo, new(MockOrderEventPublisher))

	// Заявлен PAYMENT_COMPLETED, но payload не той формы: конверт
	// отвергается целиком, consumer продолжает работу (nil)
	env := events.Envelope{
		Type:          events.TypePaymentCompleted,
		CorrelationID: "cid-1",
		Payload:       []byte(`{"name":"not a payment"}`),
	}
	assert.NoError(t, svc.HandlePaymentOutcome(ctx, env))
}

// failingRepo имитирует недоступное хранилище
type failingRepo struct {
	memory.MemoryRepository
}

func (r *failingRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	return errors.New("store unavailable")
}

func TestOrderService_HandlePaymentOutcome_StoreErrorPropagates(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	svc := NewOrderService(logger, &failingRepo{}, new(MockOrderEventPublisher))

	// Ошибка хранилища не глотается: offset не должен коммититься,
	// событие будет доставлено повторно
	env := events.NewPaymentCompleted("cid-1", "o1", "pay_1")
	err := svc.HandlePaymentOutcome(ctx, env)
	assert.Error(t, err)
}
