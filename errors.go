package vanish

import (
	"github.com/vanish/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnauthorized is returned when the API key is missing, invalid or expired.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrMailboxNotFound is returned when a mailbox is not found.
	ErrMailboxNotFound = apierrors.ErrMailboxNotFound

	// ErrEmailNotFound is returned when an email is not found.
	ErrEmailNotFound = apierrors.ErrEmailNotFound

	// ErrAttachmentNotFound is returned when an attachment is not found.
	ErrAttachmentNotFound = apierrors.ErrAttachmentNotFound

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrInvalidArgument is returned when arguments are rejected before any request is made.
	ErrInvalidArgument = apierrors.ErrInvalidArgument
)

// VanishError is implemented by all SDK errors.
type VanishError interface {
	error
	VanishError() // marker method
}

// APIError represents a non-success HTTP response from the Vanish API.
type APIError = apierrors.APIError

// NetworkError represents a network-level failure.
type NetworkError = apierrors.NetworkError

// ValidationError lists arguments rejected before any request was made.
type ValidationError = apierrors.ValidationError

var (
	_ VanishError = (*APIError)(nil)
	_ VanishError = (*NetworkError)(nil)
	_ VanishError = (*ValidationError)(nil)
)
