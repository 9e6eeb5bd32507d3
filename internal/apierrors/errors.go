// Package apierrors provides shared error types for the Vanish client.
package apierrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnauthorized is returned when the API key is missing, invalid or expired.
	ErrUnauthorized = errors.New("invalid or missing API key")

	// ErrMailboxNotFound is returned when a mailbox is not found.
	ErrMailboxNotFound = errors.New("mailbox not found")

	// ErrEmailNotFound is returned when an email is not found.
	ErrEmailNotFound = errors.New("email not found")

	// ErrAttachmentNotFound is returned when an attachment is not found.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidArgument is returned when a call is rejected before any request is made.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceMailbox indicates the error relates to a mailbox.
	ResourceMailbox ResourceType = "mailbox"
	// ResourceEmail indicates the error relates to an email.
	ResourceEmail ResourceType = "email"
	// ResourceAttachment indicates the error relates to an attachment.
	ResourceAttachment ResourceType = "attachment"
)

// APIError represents a non-success HTTP response from the Vanish API.
type APIError struct {
	StatusCode   int
	Message      string
	RequestID    string
	ResourceType ResourceType
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// VanishError implements the VanishError marker interface.
func (e *APIError) VanishError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		switch e.ResourceType {
		case ResourceMailbox:
			return target == ErrMailboxNotFound
		case ResourceEmail:
			return target == ErrEmailNotFound
		case ResourceAttachment:
			return target == ErrAttachmentNotFound
		default:
			return target == ErrMailboxNotFound || target == ErrEmailNotFound || target == ErrAttachmentNotFound
		}
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// WithResourceType returns a copy of the error with the resource type set.
// If the error is not an *APIError, it is returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:   apiErr.StatusCode,
			Message:      apiErr.Message,
			RequestID:    apiErr.RequestID,
			ResourceType: rt,
		}
	}
	return err
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// VanishError implements the VanishError marker interface.
func (e *NetworkError) VanishError() {}

// ValidationError contains one or more rejected arguments.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// VanishError implements the VanishError marker interface.
func (e *ValidationError) VanishError() {}

// Validate returns a *ValidationError listing every non-empty message,
// or nil if all messages are empty.
func Validate(msgs ...string) error {
	var errs []string
	for _, m := range msgs {
		if m != "" {
			errs = append(errs, m)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
