package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
)

// CORS returns middleware that answers preflight requests and sets
// cross-origin headers for the configured origins. With no origins
// configured it passes requests through untouched.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID, headerCorrelationID},
		ExposedHeaders: []string{"Location", headerRequestID, headerCorrelationID},
		MaxAge:         int(cfg.MaxAge.Seconds()),
	})
}
