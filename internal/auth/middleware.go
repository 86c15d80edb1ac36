package auth

import (
	"net/http"
	"strings"
)

// RequireAuth — HTTP middleware: проверяет Bearer токен и кладёт
// пользователя в context. При отсутствии или невалидности токена — 401.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing Bearer token", http.StatusUnauthorized)
				return
			}

			user, err := Verify(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
