package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanish/client-go/internal/apierrors"
)

// Default client settings.
const (
	DefaultBaseURL    = "https://api.vanish.host"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 0
	DefaultRetryDelay = time.Second
)

// maxErrorBody caps how much of an error response body is read.
const maxErrorBody = 64 << 10

// Config configures a Client created with NewClient.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.vanish.host". Required.
	BaseURL string
	// APIKey is sent as a Bearer token when non-empty.
	APIKey string
	// HTTPClient overrides the default HTTP client. When set, Timeout is ignored.
	HTTPClient *http.Client
	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of retries for retryable responses. Zero disables retries.
	MaxRetries int
	// RetryDelay is the base delay between retries. Defaults to DefaultRetryDelay.
	RetryDelay time.Duration
	// RetryOn lists the status codes that trigger a retry.
	// Defaults to 408, 429, 500, 502, 503 and 504.
	RetryOn []int
	// Logger receives debug records for every request. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Client is the HTTP API client for the Vanish REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	retry      *RetryConfig
	logger     *slog.Logger
}

// NewClient creates a Client from an explicit Config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: cfg.HTTPClient,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
	}

	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if c.retryDelay <= 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	c.retry = DefaultRetryConfig()
	c.retry.MaxRetries = c.maxRetries
	c.retry.BaseDelay = c.retryDelay
	if len(cfg.RetryOn) > 0 {
		c.retry.RetryableOn = RetryOnStatus(cfg.RetryOn...)
	}

	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do performs a JSON request and decodes a successful response into result.
// result may be nil when the body is not needed.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if result == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// DoRaw performs a request and returns the undecoded body and headers.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values) ([]byte, http.Header, error) {
	resp, err := c.send(ctx, method, path, query, nil)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	target := c.baseURL + path
	if encoded := encodeQuery(query); encoded != "" {
		target += "?" + encoded
	}
	requestID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		start := time.Now()
		resp, err := c.attempt(ctx, method, target, requestID, payload)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.DebugContext(ctx, "vanish request failed",
				"method", method, "path", path, "attempt", attempt+1, "error", err)
			if attempt < c.maxRetries {
				if werr := c.retry.Wait(ctx, attempt); werr != nil {
					return nil, werr
				}
				continue
			}
			return nil, &apierrors.NetworkError{Err: err, URL: target, Attempt: attempt + 1}
		}

		c.logger.DebugContext(ctx, "vanish request",
			"method", method, "path", path, "status", resp.StatusCode,
			"attempt", attempt+1, "duration", time.Since(start), "request_id", requestID)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return nil, werr
			}
			continue
		}
		return nil, parseErrorResponse(resp, requestID)
	}
}

func (c *Client) attempt(ctx context.Context, method, target, requestID string, payload []byte) (*response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if resp.StatusCode >= 300 {
		reader = io.LimitReader(resp.Body, maxErrorBody)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// encodeQuery drops empty values so optional parameters are never sent blank.
func encodeQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	filtered := url.Values{}
	for key, values := range query {
		for _, v := range values {
			if v != "" {
				filtered.Add(key, v)
			}
		}
	}
	return filtered.Encode()
}

func parseErrorResponse(resp *response, requestID string) error {
	var errResp struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	}

	apiErr := &apierrors.APIError{StatusCode: resp.StatusCode}

	if err := json.Unmarshal(resp.Body, &errResp); err == nil {
		apiErr.Message = errResp.Error
		if apiErr.Message == "" {
			apiErr.Message = errResp.Message
		}
		apiErr.RequestID = errResp.RequestID
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(resp.Body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = resp.Header.Get("X-Request-ID")
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = requestID
	}

	return apiErr
}
