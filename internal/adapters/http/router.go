// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	directoryHandler *handlers.DirectoryHandler,
	sessionHandler *handlers.SessionHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// Read-only directory queries.
		r.Get("/companies", directoryHandler.ListCompanies)
		r.Get("/companies/{id}", directoryHandler.GetCompany)
		r.Get("/facets", directoryHandler.Facets)
		r.Get("/status", directoryHandler.Status)
		r.Post("/refetch", directoryHandler.Refetch)

		// Browse sessions.
		r.Post("/sessions", sessionHandler.CreateSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
		r.Patch("/sessions/{id}", sessionHandler.UpdateSession)
		r.Delete("/sessions/{id}", sessionHandler.DeleteSession)
	})

	return r
}
