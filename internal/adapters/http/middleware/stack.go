// Package middleware holds the inbound request pipeline for the directory
// API. Stack assembles it in the order requests pass through:
//
//	Recovery → RequestID → CorrelationID → CORS → OpenTelemetry → Logging → Timeout → router
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
)

// StackConfig is what the standard stack is built from. A nil Metrics skips
// metric recording; a non-positive Timeout leaves requests unbounded.
type StackConfig struct {
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	CORS    config.CORSConfig
	Timeout time.Duration
}

// Stack returns the service middleware, outermost first.
func Stack(cfg StackConfig) []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		Recovery(cfg.Logger),
		RequestID(),
		CorrelationID(),
		CORS(cfg.CORS),
		OpenTelemetry(cfg.Metrics),
		Logging(cfg.Logger),
	}
	if cfg.Timeout > 0 {
		mws = append(mws, Timeout(cfg.Timeout))
	}
	return mws
}

// statusRecorder remembers the status and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func record(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// routePattern is the chi pattern that matched r, such as
// "/api/v1/companies/{id}", or "" outside a chi router or before routing.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
