package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/company-directory/internal/platform/httpclient"
)

const headerCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

// WithCorrelationID stores id in ctx for this package and for outbound calls
// to the company API.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, correlationIDKey{}, id)
	return httpclient.WithCorrelationID(ctx, id)
}

// CorrelationIDFromContext returns the stored correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// CorrelationID keeps a caller's X-Correlation-ID when it passes the same
// checks as a request ID and otherwise falls back to the request ID. It must
// run after RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerCorrelationID)
			if !usableID(id) {
				id = RequestIDFromContext(r.Context())
			}
			w.Header().Set(headerCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
		})
	}
}
