package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
)

func TestCORS_DisabledWithoutOrigins(t *testing.T) {
	t.Parallel()

	handler := middleware.CORS(config.CORSConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", http.NoBody)
	req.Header.Set("Origin", "https://browser.example.com")
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	t.Parallel()

	cfg := config.CORSConfig{
		AllowedOrigins: []string{"https://browser.example.com"},
		MaxAge:         5 * time.Minute,
	}
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("simple request", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", http.NoBody)
		req.Header.Set("Origin", "https://browser.example.com")
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://browser.example.com" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://browser.example.com")
		}
	})

	t.Run("preflight", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions/abc", http.NoBody)
		req.Header.Set("Origin", "https://browser.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPatch) {
			t.Errorf("Access-Control-Allow-Methods = %q, want it to include %q", got, http.MethodPatch)
		}
		if got := rec.Header().Get("Access-Control-Max-Age"); got != "300" {
			t.Errorf("Access-Control-Max-Age = %q, want %q", got, "300")
		}
	})

	t.Run("other origin", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", http.NoBody)
		req.Header.Set("Origin", "https://evil.example.com")
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})
}
