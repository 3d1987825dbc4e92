package dto

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
)

const problemContentType = "application/problem+json"

// Problem is an RFC 9457 problem details body.
type Problem struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Errors   []FieldProblem `json:"errors,omitempty"`
}

// FieldProblem locates one invalid input, e.g. "query.page" or
// "body.sort_order".
type FieldProblem struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// statusFor is checked in order. A fetch failure wraps ErrUnavailable and
// loading errors wrap the caller's deadline, so both come before the
// generic entries.
var statusFor = []struct {
	target error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrLoading, http.StatusServiceUnavailable},
	{domain.ErrCapacity, http.StatusServiceUnavailable},
	{domain.ErrFetchFailed, http.StatusBadGateway},
	{domain.ErrUnavailable, http.StatusBadGateway},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// StatusOf maps err to the HTTP status it is reported with.
func StatusOf(err error) int {
	for _, m := range statusFor {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// ProblemFor describes err for the request r. Validation errors list each
// failing field.
func ProblemFor(r *http.Request, err error) Problem {
	status := StatusOf(err)
	p := Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Errors = fieldProblems(verr.Fields)
	}
	return p
}

// WriteProblem answers r with the problem details for err.
func WriteProblem(w http.ResponseWriter, r *http.Request, err error) {
	p := ProblemFor(r, err)

	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(p.Status)
	if encErr := json.NewEncoder(w).Encode(p); encErr != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing problem response",
			slog.Int("status", p.Status),
			slog.Any("error", encErr),
		)
	}
}

// fieldProblems sorts by location. A bare field name is a body field;
// names that already carry a location ("query.page") and "body" itself are
// kept.
func fieldProblems(fields map[string]string) []FieldProblem {
	out := make([]FieldProblem, 0, len(fields))
	for name, msg := range fields {
		loc := name
		if name != "body" && !strings.Contains(name, ".") {
			loc = "body." + name
		}
		out = append(out, FieldProblem{Location: loc, Message: msg})
	}
	slices.SortFunc(out, func(a, b FieldProblem) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return out
}
