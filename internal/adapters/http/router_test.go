package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/jsamuelsen11/company-directory/internal/adapters/http"
	"github.com/jsamuelsen11/company-directory/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/company-directory/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/mocks"
)

type testRouter struct {
	handler   http.Handler
	directory *mocks.MockDirectoryService
	sessions  *mocks.MockSessionService
	registry  *mocks.MockHealthRegistry
}

func newTestRouter(t *testing.T, middlewares ...func(http.Handler) http.Handler) testRouter {
	t.Helper()
	tr := testRouter{
		directory: mocks.NewMockDirectoryService(t),
		sessions:  mocks.NewMockSessionService(t),
		registry:  mocks.NewMockHealthRegistry(t),
	}
	tr.handler = adapthttp.NewRouter(
		handlers.NewDirectoryHandler(tr.directory),
		handlers.NewSessionHandler(tr.sessions),
		handlers.NewHealthHandler(tr.registry),
		middlewares...,
	)
	return tr
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	tr := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/v1/companies"},
		{http.MethodGet, "/api/v1/companies/{id}"},
		{http.MethodGet, "/api/v1/facets"},
		{http.MethodGet, "/api/v1/status"},
		{http.MethodPost, "/api/v1/refetch"},
		{http.MethodPost, "/api/v1/sessions"},
		{http.MethodGet, "/api/v1/sessions/{id}"},
		{http.MethodPatch, "/api/v1/sessions/{id}"},
		{http.MethodDelete, "/api/v1/sessions/{id}"},
	}

	chiRouter, ok := tr.handler.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	tr := newTestRouter(t, testMW)
	tr.registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	tr.handler.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_IntegrationListCompanies(t *testing.T) {
	t.Parallel()

	tr := newTestRouter(t)
	tr.directory.EXPECT().
		ListCompanies(mock.Anything, company.Filter{Search: "acme", SortOrder: company.SortAsc}, 1).
		Return(&company.Page{Number: 1, Size: 12}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies?search=acme", nil)
	tr.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_IntegrationCompanyIDParam(t *testing.T) {
	t.Parallel()

	tr := newTestRouter(t)
	c := company.Company{ID: "acme-7", Name: "Acme Corp"}
	tr.directory.EXPECT().GetCompany(mock.Anything, "acme-7").Return(&c, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/acme-7", nil)
	tr.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	tr := newTestRouter(t, middleware.CORS(config.CORSConfig{
		AllowedOrigins: []string{"https://browser.example.com"},
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "https://browser.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	tr.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://browser.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://browser.example.com")
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	tr := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	tr.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	tr := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/companies", nil)
	tr.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
