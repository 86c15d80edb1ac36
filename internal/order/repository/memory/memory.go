package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository"
)

// MemoryRepository реализует OrderRepository используя in-memory хранилище.
// Используется для разработки и тестирования.
type MemoryRepository struct {
	mu            sync.RWMutex
	orders        map[string]repository.Order
	statusChanges map[string]int // orderID -> число фактических смен статуса
}

// NewMemoryRepository создаёт новый in-memory репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:        make(map[string]repository.Order),
		statusChanges: make(map[string]int),
	}
}

// Create сохраняет новый заказ в статусе CREATED
func (r *MemoryRepository) Create(ctx context.Context, userID string, amount float64) (repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := repository.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Status:    repository.StatusCreated,
		CreatedAt: time.Now().UTC(),
	}

	r.orders[order.ID] = order
	return order, nil
}

// UpdateStatus выставляет статус заказа. Идемпотентна под replay:
// повторное применение того же статуса ничего не меняет.
// Отсутствующий заказ — no-op.
func (r *MemoryRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[orderID]
	if !exists {
		return nil
	}

	if order.Status != status {
		r.statusChanges[orderID]++
	}
	order.Status = status
	r.orders[orderID] = order
	return nil
}

// FindAll возвращает все заказы, отсортированные по времени создания
func (r *MemoryRepository) FindAll(ctx context.Context) ([]repository.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]repository.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	return orders, nil
}

// Get возвращает заказ по id (вспомогательный метод для тестов)
func (r *MemoryRepository) Get(orderID string) (repository.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[orderID]
	return order, exists
}

// StatusChanges возвращает число фактических смен статуса заказа
// (вспомогательный метод для проверки идемпотентности в тестах)
func (r *MemoryRepository) StatusChanges(orderID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.statusChanges[orderID]
}
