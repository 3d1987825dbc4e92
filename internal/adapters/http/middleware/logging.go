package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
)

// Logging puts a request-scoped logger carrying the request and correlation
// IDs into the context and logs one line per completed request. Server errors
// log at error level and client errors at warn. Request headers, redacted,
// are logged at debug level.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logging.OrDiscard(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			reqLogger := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, reqLogger)

			if reqLogger.Enabled(ctx, slog.LevelDebug) {
				reqLogger.DebugContext(ctx, "request received",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					logging.Headers(r.Header),
				)
			}

			rec := record(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			reqLogger.LogAttrs(ctx, levelFor(rec.status), "request completed",
				slog.String("method", r.Method),
				slog.String("route", routePattern(r)),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int64("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
