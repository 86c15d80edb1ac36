// Package memory реализует in-memory хранилище пользователей для тестов
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SuryaTanukuT/commerce-backend/internal/user/repository"
)

// MemoryRepository реализует repository.UserRepository в памяти
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]repository.User
	byEmail map[string]string
}

// NewRepository создаёт новый in-memory репозиторий
func NewRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]repository.User),
		byEmail: make(map[string]string),
	}
}

// Create сохраняет нового пользователя
func (r *MemoryRepository) Create(ctx context.Context, email, passwordHash string) (repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return repository.User{}, repository.ErrEmailTaken
	}

	user := repository.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[user.ID] = user
	r.byEmail[email] = user.ID

	return user, nil
}

// FindByEmail находит пользователя по email
func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return r.byID[id], nil
}

// FindByID находит пользователя по ID
func (r *MemoryRepository) FindByID(ctx context.Context, id string) (repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}
