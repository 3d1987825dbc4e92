package acl

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsamuelsen11/company-directory/internal/domain"
)

func response(status int, contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{StatusCode: status, Header: h, Body: io.NopCloser(strings.NewReader(body))}
}

func TestTranslateHTTPError_Sentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusUnprocessableEntity, domain.ErrValidation},
		{http.StatusUnauthorized, domain.ErrUnavailable},
		{http.StatusForbidden, domain.ErrUnavailable},
		{http.StatusRequestTimeout, domain.ErrUnavailable},
		{http.StatusTooManyRequests, domain.ErrUnavailable},
		{http.StatusInternalServerError, domain.ErrUnavailable},
		{http.StatusBadGateway, domain.ErrUnavailable},
		{http.StatusServiceUnavailable, domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			err := TranslateHTTPError(&http.Response{StatusCode: tt.status, Header: http.Header{}, Body: http.NoBody})
			if !errors.Is(err, tt.want) {
				t.Errorf("TranslateHTTPError(%d) = %v, want errors.Is %v", tt.status, err, tt.want)
			}
		})
	}
}

func TestTranslateHTTPError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *http.Response
		want string
	}{
		{
			name: "problem detail",
			resp: response(http.StatusNotFound, "application/problem+json",
				`{"title":"Not Found","status":404,"detail":"no collection at /v2/companies"}`),
			want: "company API returned 404: no collection at /v2/companies",
		},
		{
			name: "plain json message",
			resp: response(http.StatusServiceUnavailable, "application/json; charset=utf-8",
				`{"message":"maintenance window"}`),
			want: "company API returned 503: maintenance window",
		},
		{
			name: "title only",
			resp: response(http.StatusBadGateway, "application/problem+json", `{"title":"Upstream Down"}`),
			want: "company API returned 502: Upstream Down",
		},
		{
			name: "html body ignored",
			resp: response(http.StatusInternalServerError, "text/html", "<h1>oops</h1>"),
			want: "company API returned 500: Internal Server Error",
		},
		{
			name: "malformed json ignored",
			resp: response(http.StatusInternalServerError, "application/json", `{"message":`),
			want: "company API returned 500: Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := TranslateHTTPError(tt.resp)
			if !strings.HasPrefix(err.Error(), tt.want) {
				t.Errorf("error = %q, want prefix %q", err.Error(), tt.want)
			}
		})
	}
}

func TestTranslateHTTPError_FieldErrors(t *testing.T) {
	t.Parallel()

	resp := response(http.StatusBadRequest, "application/problem+json", `{
		"detail": "invalid query",
		"errors": [
			{"location": "query.page", "message": "must be positive"},
			{"location": "body.name", "message": "is required"},
			{"location": "sort", "message": "unknown order"}
		]
	}`)

	err := TranslateHTTPError(resp)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *domain.ValidationError", err)
	}

	want := map[string]string{
		"page": "must be positive",
		"name": "is required",
		"sort": "unknown order",
	}
	if diff := cmp.Diff(want, verr.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateHTTPError_CredentialsHint(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(response(http.StatusUnauthorized, "", ""))
	if !strings.Contains(err.Error(), "client.api_key") {
		t.Errorf("error = %q, want a hint about client.api_key", err.Error())
	}
}

func TestTranslateHTTPError_UnmappedStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusConflict, http.StatusTeapot, http.StatusNotModified} {
		err := TranslateHTTPError(response(status, "", ""))
		for _, sentinel := range []error{domain.ErrNotFound, domain.ErrValidation, domain.ErrUnavailable} {
			if errors.Is(err, sentinel) {
				t.Errorf("TranslateHTTPError(%d) matched %v, want no sentinel", status, sentinel)
			}
		}
	}
}
