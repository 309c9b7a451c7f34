package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindsMatchSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
		not  []error
	}{
		{"validation", Invalid("email", "must contain @"), ErrValidation, []error{ErrNotFound, ErrUnavailable}},
		{"not found", &NotFoundError{Email: "a@b.com"}, ErrNotFound, []error{ErrValidation, ErrUnavailable}},
		{"unavailable", &UnavailableError{Op: "save", Err: context.DeadlineExceeded}, ErrUnavailable, []error{ErrValidation, ErrNotFound}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("login: %w", tt.err)
			if !errors.Is(wrapped, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.is)
			}
			for _, other := range tt.not {
				if errors.Is(wrapped, other) {
					t.Errorf("errors.Is(%v, %v) = true", wrapped, other)
				}
			}
		})
	}
}

func TestUnavailableUnwraps(t *testing.T) {
	err := &UnavailableError{Op: "fetch", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("UnavailableError must unwrap its cause")
	}
	if got := err.Error(); got != "fetch: service unavailable: context deadline exceeded" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidationMessage(t *testing.T) {
	if got := Invalid("", "need 30 words").Error(); got != "need 30 words" {
		t.Errorf("Error() = %q", got)
	}
	if got := Invalid("email", "must contain @").Error(); got != "email: must contain @" {
		t.Errorf("Error() = %q", got)
	}
}
