// Package service реализует бизнес-логику User Service:
// регистрация, вход и выпуск JWT
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/user/repository"
)

// ErrEmailTaken возвращается при регистрации с занятым email
var ErrEmailTaken = errors.New("email already taken")

// ErrInvalidCredentials возвращается при неверном email или пароле
var ErrInvalidCredentials = errors.New("invalid credentials")

// User — пользователь без credentials, отдаётся наружу
type User struct {
	ID    string
	Email string
}

// UserService реализует регистрацию и аутентификацию пользователей
type UserService struct {
	logger    *zap.Logger
	repo      repository.UserRepository
	jwtSecret string
}

// NewUserService создаёт новый UserService
func NewUserService(logger *zap.Logger, repo repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		logger:    logger,
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

// Register регистрирует нового пользователя.
// Пароль хранится только как bcrypt хэш.
func (s *UserService) Register(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", created.ID),
		zap.String("email", created.Email),
	)

	return User{ID: created.ID, Email: created.Email}, nil
}

// Login проверяет credentials и выпускает JWT.
// Несуществующий email и неверный пароль неразличимы для клиента.
func (s *UserService) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.Sign(s.jwtSecret, auth.User{ID: found.ID, Email: found.Email})
	if err != nil {
		return User{}, "", fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", found.ID))

	return User{ID: found.ID, Email: found.Email}, token, nil
}

// Me возвращает профиль пользователя по его ID из токена
func (s *UserService) Me(ctx context.Context, userID string) (User, error) {
	found, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return User{}, repository.ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return User{ID: found.ID, Email: found.Email}, nil
}
