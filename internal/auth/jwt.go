package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL — срок жизни access token (как в исходной платформе)
const TokenTTL = 2 * time.Hour

// ErrInvalidToken возвращается при невалидном или истёкшем токене
var ErrInvalidToken = errors.New("invalid token")

// User — аутентифицированный пользователь, извлечённый из токена.
// Core доверяет этому значению без повторной проверки credentials.
type User struct {
	ID    string
	Email string
}

// Claims — JWT claims, которые выпускает user service
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sign выпускает HS256 токен для пользователя
func Sign(secret string, user User) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is not set")
	}

	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify проверяет подпись и срок жизни токена и возвращает пользователя
func Verify(secret, tokenString string) (User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return User{}, ErrInvalidToken
	}

	return User{ID: claims.ID, Email: claims.Email}, nil
}
