// Package mongo реализует хранилище продуктов поверх MongoDB
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SuryaTanukuT/commerce-backend/internal/product/repository"
)

const collectionName = "products"

// ProductDocument представляет документ продукта в MongoDB
type ProductDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Stock     int                `bson:"stock"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// Repository реализует repository.ProductRepository поверх MongoDB
type Repository struct {
	collection *mongo.Collection
}

// NewRepository создаёт новый MongoDB репозиторий продуктов
func NewRepository(client *mongo.Client, dbName string) *Repository {
	return &Repository{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Create сохраняет новый продукт
func (r *Repository) Create(ctx context.Context, name string, price float64, stock int) (repository.Product, error) {
	doc := ProductDocument{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return repository.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return toProduct(doc), nil
}

// FindAll возвращает все продукты каталога
func (r *Repository) FindAll(ctx context.Context) ([]repository.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]repository.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, toProduct(doc))
	}
	return products, nil
}

func toProduct(doc ProductDocument) repository.Product {
	return repository.Product{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Price:     doc.Price,
		Stock:     doc.Stock,
		CreatedAt: doc.CreatedAt,
	}
}
