package auth

import "context"

type ctxKeyUser struct{}

var userKey = ctxKeyUser{}

// WithUser сохраняет аутентифицированного пользователя в контексте
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext возвращает пользователя из контекста, если middleware его положил
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}
