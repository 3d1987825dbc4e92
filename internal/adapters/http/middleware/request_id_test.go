package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/middleware"
)

func serveRequestID(t *testing.T, inbound string) (ctxID, headerID string) {
	t.Helper()

	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = middleware.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", http.NoBody)
	if inbound != "" {
		req.Header.Set("X-Request-ID", inbound)
	}
	handler.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get("X-Request-ID")
}

func TestRequestID_KeepsUsableHeader(t *testing.T) {
	t.Parallel()

	ctxID, headerID := serveRequestID(t, "edge-7f3a")
	if ctxID != "edge-7f3a" || headerID != "edge-7f3a" {
		t.Errorf("context ID = %q, header ID = %q, want edge-7f3a for both", ctxID, headerID)
	}
}

func TestRequestID_AssignsUUID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"missing":     "",
		"too long":    strings.Repeat("a", 129),
		"space":       "has space",
		"control":     "id\x01",
		"non-ascii":   "idé",
		"tab":         "a\tb",
		"newline log": "abc\ninjected",
	}

	for name, inbound := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctxID, headerID := serveRequestID(t, inbound)
			if _, err := uuid.Parse(ctxID); err != nil {
				t.Errorf("context ID %q is not a UUID: %v", ctxID, err)
			}
			if headerID != ctxID {
				t.Errorf("header ID = %q, want %q", headerID, ctxID)
			}
		})
	}
}

func TestRequestID_MaxLengthAccepted(t *testing.T) {
	t.Parallel()

	id := strings.Repeat("x", 128)
	if ctxID, _ := serveRequestID(t, id); ctxID != id {
		t.Errorf("128-byte ID replaced with %q", ctxID)
	}
}

func TestRequestID_DistinctPerRequest(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 50 {
		id, _ := serveRequestID(t, "")
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestRequestIDFromContext(t *testing.T) {
	t.Parallel()

	if got := middleware.RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context: got %q, want empty", got)
	}
	ctx := middleware.WithRequestID(context.Background(), "req-1")
	if got := middleware.RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("got %q, want req-1", got)
	}
}
