// Package acl adapts the remote company API to the directory's domain. Wire
// formats and their translation live in acl/company; this package owns the
// request lifecycle and maps the API's failures onto domain errors.
package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/company-directory/internal/domain"
)

// errorBodyLimit caps how much of a failed response is read for its message.
const errorBodyLimit = 64 << 10

// apiError is the error body the company API may send, either RFC 9457
// problem details or a plain {"message": ...} object.
type apiError struct {
	Title   string       `json:"title"`
	Detail  string       `json:"detail"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors"`
}

type fieldError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (e apiError) text(status int) string {
	for _, s := range []string{e.Detail, e.Message, e.Title} {
		if s != "" {
			return s
		}
	}
	return http.StatusText(status)
}

// TranslateHTTPError converts a non-2xx company API response into an error
// callers can match with errors.Is:
//
//   - 404: domain.ErrNotFound, usually a wrong directory.remote_path
//   - 400, 422: domain.ErrValidation, as a *domain.ValidationError when the
//     body lists field errors
//   - 401, 403, 408, 429, 5xx: domain.ErrUnavailable
//
// Anything else is returned unwrapped.
func TranslateHTTPError(resp *http.Response) error {
	status := resp.StatusCode
	body := readAPIError(resp)
	msg := fmt.Sprintf("company API returned %d: %s", status, body.text(status))

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		if len(body.Errors) > 0 {
			return fieldErrors(body.Errors)
		}
		return fmt.Errorf("%s: %w", msg, domain.ErrValidation)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%s (check client.api_key): %w", msg, domain.ErrUnavailable)
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests,
		status >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", msg, domain.ErrUnavailable)
	default:
		return errors.New(msg)
	}
}

// readAPIError decodes a JSON error body. Missing, non-JSON, or malformed
// bodies yield the zero value.
func readAPIError(resp *http.Response) apiError {
	var e apiError
	if resp.Body == nil {
		return e
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || (mediaType != "application/problem+json" && mediaType != "application/json") {
		return e
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil {
		return apiError{}
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return apiError{}
	}
	return e
}

// fieldErrors keys each message by field name, dropping the "body." or
// "query." location prefix.
func fieldErrors(errs []fieldError) *domain.ValidationError {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := strings.TrimPrefix(strings.TrimPrefix(fe.Location, "body."), "query.")
		fields[name] = fe.Message
	}
	return &domain.ValidationError{Fields: fields}
}
