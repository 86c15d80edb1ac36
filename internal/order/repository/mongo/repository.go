package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SuryaTanukuT/commerce-backend/internal/order/repository"
)

// OrderDocument представляет документ в коллекции orders
type OrderDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Amount    float64            `bson:"amount"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Repository реализует OrderRepository используя MongoDB
type Repository struct {
	col *mongo.Collection
}

// NewRepository создаёт новый MongoDB репозиторий заказов
func NewRepository(client *mongo.Client, dbName string) *Repository {
	return &Repository{
		col: client.Database(dbName).Collection("orders"),
	}
}

// Create сохраняет новый заказ в статусе CREATED
func (r *Repository) Create(ctx context.Context, userID string, amount float64) (repository.Order, error) {
	doc := OrderDocument{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Amount:    amount,
		Status:    repository.StatusCreated,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return repository.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return toDomain(doc), nil
}

// UpdateStatus выставляет статус заказа безусловным $set по _id.
// Эффект идемпотентен: N применений дают то же состояние, что и одно.
// Несуществующий (или невалидный) id — no-op, как и требует контракт.
func (r *Repository) UpdateStatus(ctx context.Context, orderID, status string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		// id из чужого события, которому не соответствует ни один документ
		return nil
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	return nil
}

// FindAll возвращает все заказы
func (r *Repository) FindAll(ctx context.Context) ([]repository.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []OrderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]repository.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, toDomain(doc))
	}

	return orders, nil
}

func toDomain(doc OrderDocument) repository.Order {
	return repository.Order{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Amount:    doc.Amount,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
	}
}
