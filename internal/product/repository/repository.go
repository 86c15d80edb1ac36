// Package repository определяет доступ к каталогу продуктов
package repository

import (
	"context"
	"time"
)

// Product представляет продукт каталога
type Product struct {
	ID        string
	Name      string
	Price     float64
	Stock     int
	CreatedAt time.Time
}

// ProductRepository определяет интерфейс хранилища продуктов
type ProductRepository interface {
	// Create сохраняет новый продукт
	Create(ctx context.Context, name string, price float64, stock int) (Product, error)

	// FindAll возвращает все продукты каталога
	FindAll(ctx context.Context) ([]Product, error)
}
