// Package repository определяет доступ к хранилищу пользователей
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда пользователь не найден
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken возвращается при попытке регистрации с занятым email
var ErrEmailTaken = errors.New("email already taken")

// User представляет пользователя в хранилище.
// PasswordHash — bcrypt хэш, наружу из repository слоя не отдаётся.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository определяет интерфейс хранилища пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя.
	// Возвращает ErrEmailTaken, если email уже занят.
	Create(ctx context.Context, email, passwordHash string) (User, error)

	// FindByEmail находит пользователя по email.
	// Возвращает ErrNotFound, если пользователь не существует.
	FindByEmail(ctx context.Context, email string) (User, error)

	// FindByID находит пользователя по ID.
	// Возвращает ErrNotFound, если пользователь не существует.
	FindByID(ctx context.Context, id string) (User, error)
}
