package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SuryaTanukuT/commerce-backend/internal/auth"
	"github.com/SuryaTanukuT/commerce-backend/internal/correlation"
	platformhealth "github.com/SuryaTanukuT/commerce-backend/platform/health"
)

// NewRouter создаёт и настраивает HTTP роутер User Service
func NewRouter(handler *Handler, jwtSecret string, healthChecks []platformhealth.Check) http.Handler {
	router := chi.NewRouter()

	router.Use(correlation.Middleware)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.PostRegister)
		r.Post("/login", handler.PostLogin)

		// /auth/me требует Bearer токен
		r.Group(func(pr chi.Router) {
			pr.Use(auth.RequireAuth(jwtSecret))
			pr.Get("/me", handler.GetMe)
		})
	})

	// Health без auth middleware
	router.Get("/health", platformhealth.Handler(healthChecks...))

	return router
}
