package apierrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "with message",
			err:      &APIError{StatusCode: 401, Message: "invalid API key"},
			expected: "API error 401: invalid API key",
		},
		{
			name:     "without message",
			err:      &APIError{StatusCode: 500},
			expected: "API error 500",
		},
		{
			name:     "with request ID",
			err:      &APIError{StatusCode: 404, Message: "not found", RequestID: "req-123"},
			expected: "API error 404: not found (request_id: req-123)",
		},
		{
			name:     "with request ID only",
			err:      &APIError{StatusCode: 500, RequestID: "req-456"},
			expected: "API error 500 (request_id: req-456)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		target   error
		expected bool
	}{
		{"401 matches ErrUnauthorized", &APIError{StatusCode: 401}, ErrUnauthorized, true},
		{"403 matches ErrUnauthorized", &APIError{StatusCode: 403}, ErrUnauthorized, true},
		{"401 does not match ErrMailboxNotFound", &APIError{StatusCode: 401}, ErrMailboxNotFound, false},
		{"404 mailbox matches ErrMailboxNotFound", &APIError{StatusCode: 404, ResourceType: ResourceMailbox}, ErrMailboxNotFound, true},
		{"404 mailbox does not match ErrEmailNotFound", &APIError{StatusCode: 404, ResourceType: ResourceMailbox}, ErrEmailNotFound, false},
		{"404 email matches ErrEmailNotFound", &APIError{StatusCode: 404, ResourceType: ResourceEmail}, ErrEmailNotFound, true},
		{"404 attachment matches ErrAttachmentNotFound", &APIError{StatusCode: 404, ResourceType: ResourceAttachment}, ErrAttachmentNotFound, true},
		{"404 attachment does not match ErrEmailNotFound", &APIError{StatusCode: 404, ResourceType: ResourceAttachment}, ErrEmailNotFound, false},
		{"404 unknown matches ErrMailboxNotFound", &APIError{StatusCode: 404}, ErrMailboxNotFound, true},
		{"404 unknown matches ErrEmailNotFound", &APIError{StatusCode: 404}, ErrEmailNotFound, true},
		{"429 matches ErrRateLimited", &APIError{StatusCode: 429}, ErrRateLimited, true},
		{"500 does not match any sentinel", &APIError{StatusCode: 500}, ErrUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Is(tt.target); got != tt.expected {
				t.Errorf("Is(%v) = %v, want %v", tt.target, got, tt.expected)
			}
		})
	}
}

func TestAPIError_ErrorsIsThroughWrap(t *testing.T) {
	err := fmt.Errorf("get email: %w", &APIError{StatusCode: 404, ResourceType: ResourceEmail})
	if !errors.Is(err, ErrEmailNotFound) {
		t.Error("errors.Is should match ErrEmailNotFound through wrapping")
	}
}

func TestWithResourceType(t *testing.T) {
	if WithResourceType(nil, ResourceEmail) != nil {
		t.Error("nil error should stay nil")
	}

	result := WithResourceType(&APIError{StatusCode: 404, Message: "not found", RequestID: "r1"}, ResourceMailbox)
	apiErr, ok := result.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", result)
	}
	if apiErr.ResourceType != ResourceMailbox {
		t.Errorf("ResourceType = %q, want %q", apiErr.ResourceType, ResourceMailbox)
	}
	if apiErr.Message != "not found" || apiErr.RequestID != "r1" {
		t.Errorf("fields not preserved: %+v", apiErr)
	}

	plain := errors.New("some other error")
	if WithResourceType(plain, ResourceEmail) != plain {
		t.Error("non-APIError should be returned unchanged")
	}
}

func TestNetworkError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &NetworkError{Err: underlying, URL: "https://example.com"}

	if got := err.Error(); got != "network error: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should reach the underlying error")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("", ""); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	err := Validate("address is required", "", "limit must be between 1 and 100")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(vErr.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(vErr.Errors))
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("validation errors should match ErrInvalidArgument")
	}
	want := "validation failed: address is required; limit must be between 1 and 100"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
