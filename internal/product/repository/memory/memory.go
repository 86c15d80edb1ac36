// Package memory реализует in-memory каталог продуктов для тестов
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SuryaTanukuT/commerce-backend/internal/product/repository"
)

// MemoryRepository реализует repository.ProductRepository в памяти
type MemoryRepository struct {
	mu       sync.RWMutex
	products []repository.Product
}

// NewRepository создаёт новый in-memory репозиторий
func NewRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create сохраняет новый продукт
func (r *MemoryRepository) Create(ctx context.Context, name string, price float64, stock int) (repository.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := repository.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	}
	r.products = append(r.products, product)
	return product, nil
}

// FindAll возвращает все продукты каталога
func (r *MemoryRepository) FindAll(ctx context.Context) ([]repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
