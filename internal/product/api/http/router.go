package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/correlation"
	platformhealth "github.com/SuryaTanukuT/commerce-backend/platform/health"
)

// NewRouter создаёт и настраивает HTTP роутер Product Service.
// Добавление продукта требует токен, чтение каталога — нет.
func NewRouter(handler *Handler, jwtSecret string, healthChecks []platformhealth.Check) http.Handler {
	router := chi.NewRouter()

	router.Use(correlation.Middleware)

	router.Route("/products", func(r chi.Router) {
		r.Get("/", handler.GetProducts)

		r.Group(func(pr chi.Router) {
			pr.Use(auth.RequireAuth(jwtSecret))
			pr.Post("/", handler.PostProducts)
		})
	})

	// Health без auth middleware
	router.Get("/health", platformhealth.Handler(healthChecks...))

	return router
}
