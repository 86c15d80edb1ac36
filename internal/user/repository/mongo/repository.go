// Package mongo реализует хранилище пользователей поверх MongoDB
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SuryaTanukuT/commerce-backend/internal/user/repository"
)

const collectionName = "users"

// UserDocument представляет документ пользователя в MongoDB
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// Repository реализует repository.UserRepository поверх MongoDB
type Repository struct {
	collection *mongo.Collection
}

// NewRepository создаёт новый MongoDB репозиторий пользователей
func NewRepository(client *mongo.Client, dbName string) *Repository {
	return &Repository{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes создаёт уникальный индекс по email.
// Уникальность email обеспечивает база, а не application-level проверка:
// два конкурентных register на один email не создадут дубликат.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Create сохраняет нового пользователя
func (r *Repository) Create(ctx context.Context, email, passwordHash string) (repository.User, error) {
	doc := UserDocument{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.User{}, repository.ErrEmailTaken
		}
		return repository.User{}, fmt.Errorf("insert user: %w", err)
	}

	return toUser(doc), nil
}

// FindByEmail находит пользователя по email
func (r *Repository) FindByEmail(ctx context.Context, email string) (repository.User, error) {
	var doc UserDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.User{}, repository.ErrNotFound
		}
		return repository.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return toUser(doc), nil
}

// FindByID находит пользователя по ID
func (r *Repository) FindByID(ctx context.Context, id string) (repository.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.User{}, repository.ErrNotFound
	}

	var doc UserDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.User{}, repository.ErrNotFound
		}
		return repository.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return toUser(doc), nil
}

func toUser(doc UserDocument) repository.User {
	return repository.User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}
}
