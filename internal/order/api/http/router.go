package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/correlation"
	platformhealth "github.com/SuryaTanukuT/commerce-backend/platform/health"
)

// NewRouter создаёт и настраивает HTTP роутер Order Service.
// healthChecks включает как обязательные зависимости (Mongo), так и
// опциональные (Kafka): недоступный лог переводит health в degraded,
// но не блокирует синхронный create-путь.
func NewRouter(handler *Handler, jwtSecret string, healthChecks []platformhealth.Check) http.Handler {
	router := chi.NewRouter()

	router.Use(correlation.Middleware)

	// /orders* требуют Bearer токен
	router.Route("/orders", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSecret))
		r.Post("/", handler.PostOrders)
		r.Get("/", handler.GetOrders)
	})

	// Health без auth middleware
	router.Get("/health", platformhealth.Handler(healthChecks...))

	return router
}
