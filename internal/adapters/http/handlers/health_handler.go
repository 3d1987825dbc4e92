package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler returns a handler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness answers 200 while the process can serve HTTP at all.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness runs every registered check and answers 503 if any failed.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))

	code := http.StatusOK
	if resp.Status != dto.ReadyStatus {
		code = http.StatusServiceUnavailable
		for _, c := range resp.Checks {
			if c.Error != "" {
				logging.FromContext(r.Context()).WarnContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name),
					slog.String("error", c.Error),
				)
			}
		}
	}

	writeJSON(w, r, code, resp)
}
