package vanish

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrUnauthorized", ErrUnauthorized},
		{"ErrMailboxNotFound", ErrMailboxNotFound},
		{"ErrEmailNotFound", ErrEmailNotFound},
		{"ErrAttachmentNotFound", ErrAttachmentNotFound},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrInvalidArgument", ErrInvalidArgument},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			if s.err == nil {
				t.Fatal("sentinel error is nil")
			}
			if s.err.Error() == "" {
				t.Error("sentinel error has empty message")
			}
		})
	}
}

func TestVanishError_Interface(t *testing.T) {
	errs := []error{
		&APIError{StatusCode: 500},
		&NetworkError{Err: errors.New("refused")},
		&ValidationError{Errors: []string{"bad"}},
	}

	for _, err := range errs {
		wrapped := fmt.Errorf("op: %w", err)
		var vErr VanishError
		if !errors.As(wrapped, &vErr) {
			t.Errorf("%T should satisfy VanishError", err)
		}
	}
}

func TestAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{401, ErrUnauthorized},
		{404, ErrEmailNotFound},
		{404, ErrMailboxNotFound},
		{429, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if !errors.Is(&APIError{StatusCode: tt.status}, tt.target) {
				t.Errorf("status %d should match %v", tt.status, tt.target)
			}
		})
	}
}
