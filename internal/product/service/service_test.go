package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/product/repository/memory"
)

func newService() *ProductService {
	return NewProductService(zap.NewNop(), memory.NewRepository())
}

func TestProductService_CreateProduct(t *testing.T) {
	svc := newService()

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "Keyboard",
		Price: 49.99,
		Stock: 10,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Keyboard", product.Name)
	assert.Equal(t, 49.99, product.Price)
	assert.Equal(t, 10, product.Stock)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	svc := newService()

	tests := []struct {
		name string
		in   CreateProductInput
	}{
		{name: "empty name", in: CreateProductInput{Name: "", Price: 1, Stock: 1}},
		{name: "negative price", in: CreateProductInput{Name: "Keyboard", Price: -1, Stock: 1}},
		{name: "negative stock", in: CreateProductInput{Name: "Keyboard", Price: 1, Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.in)
			assert.Error(t, err)
		})
	}
}

func TestProductService_ListProducts(t *testing.T) {
	svc := newService()

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "Keyboard", Price: 49.99, Stock: 10})
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "Mouse", Price: 19.99, Stock: 5})
	require.NoError(t, err)

	products, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
