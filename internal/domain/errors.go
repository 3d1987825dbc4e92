package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MsgRequired is the validation message for mandatory fields.
const MsgRequired = "is required"

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("unavailable")

	// ErrFetchFailed is the single error kind of the data loader: the
	// company collection could not be fetched after the retry budget was
	// spent. It always wraps the last underlying cause.
	ErrFetchFailed = errors.New("collection fetch failed")

	// ErrLoading is returned when the collection has not finished loading
	// before the caller's deadline.
	ErrLoading = errors.New("collection is loading")

	// ErrCapacity is returned when a bounded resource, such as the number of
	// browse sessions, is exhausted.
	ErrCapacity = errors.New("capacity exceeded")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
