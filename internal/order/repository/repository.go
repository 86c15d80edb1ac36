package repository

import (
	"context"
	"time"
)

// Статусы жизненного цикла заказа.
// CREATED выставляется синхронно при создании; терминальные статусы —
// только через consumption событий исхода оплаты. Других писателей нет.
const (
	StatusCreated = "CREATED"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
)

// Order представляет доменную модель заказа
type Order struct {
	ID        string
	UserID    string
	Amount    float64
	Status    string
	CreatedAt time.Time
}

// OrderRepository определяет интерфейс хранилища заказов.
// Service слой зависит от этого интерфейса, а не от конкретной реализации.
type OrderRepository interface {
	// Create сохраняет новый заказ в статусе CREATED и возвращает его с ID
	Create(ctx context.Context, userID string, amount float64) (Order, error)

	// UpdateStatus выставляет статус заказа безусловным set по id.
	// Идемпотентна: повторное применение даёт тот же результат, что и
	// однократное. Отсутствующий заказ — no-op, не ошибка.
	UpdateStatus(ctx context.Context, orderID, status string) error

	// FindAll возвращает все заказы
	FindAll(ctx context.Context) ([]Order, error)
}
