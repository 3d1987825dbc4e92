package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Is(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &ValidationError{Fields: map[string]string{"id": MsgRequired}})

	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("errors.As(err, *ValidationError) = false, want true")
	}
	if verr.Fields["id"] != MsgRequired {
		t.Errorf("Fields[id] = %q, want %q", verr.Fields["id"], MsgRequired)
	}
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{
		"name": MsgRequired,
		"id":   MsgRequired,
	}}

	want := "validation error: id: is required; name: is required"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrFetchFailed_WrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := fmt.Errorf("%w: %w", ErrFetchFailed, cause)

	if !errors.Is(err, ErrFetchFailed) {
		t.Error("errors.Is(err, ErrFetchFailed) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestSentinels_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrValidation, ErrUnavailable, ErrFetchFailed, ErrLoading, ErrCapacity}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}
