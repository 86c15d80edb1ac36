// Package correlation реализует сквозной correlation id: он назначается
// один раз на входящий бизнес-запрос, передаётся без изменений во все
// downstream события и внешние вызовы и используется только для
// трассировки в логах — никогда для маршрутизации.
package correlation

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header — HTTP заголовок, через который correlation id приходит извне
const Header = "x-correlation-id"

type ctxKeyCorrelationID struct{}

var correlationIDKey = ctxKeyCorrelationID{}

// WithID сохраняет correlation id в контексте
func WithID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey, cid)
}

// FromContext возвращает correlation id из контекста.
// Если id не был назначен (не-HTTP путь), генерирует новый —
// транзакция всегда трассируема.
func FromContext(ctx context.Context) string {
	if cid, ok := ctx.Value(correlationIDKey).(string); ok && cid != "" {
		return cid
	}
	return uuid.NewString()
}

// Middleware — HTTP middleware: берёт correlation id из заголовка или
// генерирует новый, кладёт его в context и эхом возвращает в ответе.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(Header)
		if cid == "" {
			cid = uuid.NewString()
		}

		w.Header().Set(Header, cid)
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), cid)))
	})
}
