package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/user/repository/memory"
)

const testSecret = "test-secret"

func newService() *UserService {
	return NewUserService(zap.NewNop(), memory.NewRepository(), testSecret)
}

func TestUserService_Register(t *testing.T) {
	svc := newService()

	user, err := svc.Register(context.Background(), "Alice@Example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	// email нормализуется к нижнему регистру
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_Register_RequiresEmailAndPassword(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), "", "s3cret")
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "")
	assert.Error(t, err)
}

func TestUserService_Login_IssuesValidToken(t *testing.T) {
	svc := newService()

	registered, err := svc.Register(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Токен верифицируется тем же секретом и несёт идентичность пользователя
	verified, err := auth.Verify(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, verified.ID)
	assert.Equal(t, "alice@example.com", verified.Email)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc := newService()

	// Несуществующий email неотличим от неверного пароля
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Me(t *testing.T) {
	svc := newService()

	registered, err := svc.Register(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	user, err := svc.Me(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.Me(context.Background(), "missing-id")
	assert.Error(t, err)
}
