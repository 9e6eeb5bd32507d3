// Package api provides HTTP client functionality for communicating with the
// Vanish temporary email API. It handles authentication, request/response
// serialization, and optional retries for transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// A base URL is required. The API key is optional; when set it is sent as a
// Bearer token on every request. Each request also carries a fresh
// X-Request-ID that is echoed back in [apierrors.APIError] values.
//
// # Retry Behavior
//
// Retries are off by default. With [Config.MaxRetries] above zero, requests
// are retried with exponential backoff for these HTTP status codes:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use.
package api
