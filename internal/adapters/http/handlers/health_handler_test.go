package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
	"github.com/jsamuelsen11/company-directory/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/company-directory/mocks"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	// No expectations: liveness must not run the checks.
	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[map[string]string](t, rec)["status"]; got != "alive" {
		t.Errorf("status = %q, want alive", got)
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		results  map[string]error
		wantCode int
		want     dto.ReadinessResponse
	}{
		{
			name:     "no checks registered",
			results:  map[string]error{},
			wantCode: http.StatusOK,
			want:     dto.ReadinessResponse{Status: "ready", Checks: []dto.CheckResponse{}},
		},
		{
			name:     "collection loaded",
			results:  map[string]error{"loader": nil, "static-file": nil},
			wantCode: http.StatusOK,
			want: dto.ReadinessResponse{Status: "ready", Checks: []dto.CheckResponse{
				{Name: "loader", Status: "pass"},
				{Name: "static-file", Status: "pass"},
			}},
		},
		{
			name: "remote source down",
			results: map[string]error{
				"loader":      errors.New("collection fetch failed"),
				"company-api": errors.New("circuit breaker open"),
			},
			wantCode: http.StatusServiceUnavailable,
			want: dto.ReadinessResponse{Status: "not_ready", Checks: []dto.CheckResponse{
				{Name: "company-api", Status: "fail", Error: "circuit breaker open"},
				{Name: "loader", Status: "fail", Error: "collection fetch failed"},
			}},
		},
		{
			name:     "still loading",
			results:  map[string]error{"loader": errors.New("collection is loading"), "company-api": nil},
			wantCode: http.StatusServiceUnavailable,
			want: dto.ReadinessResponse{Status: "not_ready", Checks: []dto.CheckResponse{
				{Name: "company-api", Status: "pass"},
				{Name: "loader", Status: "fail", Error: "collection is loading"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)
			h := handlers.NewHealthHandler(registry)

			rec := httptest.NewRecorder()
			h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			requireStatus(t, rec, tt.wantCode)
			got := decodeJSON[dto.ReadinessResponse](t, rec)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("readiness body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
