// Package service реализует бизнес-логику каталога продуктов
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/product/repository"
)

// CreateProductInput — данные для добавления продукта в каталог
type CreateProductInput struct {
	Name  string
	Price float64
	Stock int
}

// ProductService реализует операции каталога
type ProductService struct {
	logger *zap.Logger
	repo   repository.ProductRepository
}

// NewProductService создаёт новый ProductService
func NewProductService(logger *zap.Logger, repo repository.ProductRepository) *ProductService {
	return &ProductService{
		logger: logger,
		repo:   repo,
	}
}

// CreateProduct добавляет продукт в каталог
func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (repository.Product, error) {
	if in.Name == "" {
		return repository.Product{}, fmt.Errorf("name is required")
	}
	if in.Price < 0 {
		return repository.Product{}, fmt.Errorf("price must be non-negative")
	}
	if in.Stock < 0 {
		return repository.Product{}, fmt.Errorf("stock must be non-negative")
	}

	product, err := s.repo.Create(ctx, in.Name, in.Price, in.Stock)
	if err != nil {
		return repository.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)

	return product, nil
}

// ListProducts возвращает все продукты каталога
func (s *ProductService) ListProducts(ctx context.Context) ([]repository.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
