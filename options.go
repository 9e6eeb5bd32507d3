package vanish

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vanish/client-go/internal/delivery"
)

const (
	defaultBaseURL      = "https://api.vanish.host"
	defaultTimeout      = 30 * time.Second
	defaultListLimit    = 20
	maxListLimit        = 100
	defaultPollTimeout  = delivery.DefaultPollTimeout
	defaultPollInterval = delivery.DefaultPollInterval
)

// PollErrorPolicy decides what a poll does when a listing query fails.
type PollErrorPolicy = delivery.ErrorPolicy

const (
	// PollErrorFail stops the poll and returns the query error. This is the default.
	PollErrorFail = delivery.ErrorPolicyFail
	// PollErrorIgnore logs query errors and keeps polling until the timeout.
	PollErrorIgnore = delivery.ErrorPolicyIgnore
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	retryOn    []int
	logger     *slog.Logger
}

// generateConfig holds configuration for address generation.
type generateConfig struct {
	domain string
	prefix string
}

// listConfig holds configuration for listing a mailbox.
type listConfig struct {
	limit  int
	cursor string
}

// pollConfig holds configuration for polling a mailbox.
type pollConfig struct {
	timeout      time.Duration
	interval     time.Duration
	initialCount *int
	errorPolicy  PollErrorPolicy
	logger       *slog.Logger
	clock        delivery.Clock
}

// Option configures the client.
type Option func(*clientConfig)

// GenerateOption configures address generation.
type GenerateOption func(*generateConfig)

// ListOption configures a mailbox listing.
type ListOption func(*listConfig)

// PollOption configures polling for new mail.
type PollOption func(*pollConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key sent as a Bearer token.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for API calls.
// Default: 0 (no retries)
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryDelay sets the base delay between retries. The delay doubles on
// each further attempt.
// Default: 1 second
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithLogger sets the logger used for request and poll debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithDomain picks the domain for a generated address.
func WithDomain(domain string) GenerateOption {
	return func(c *generateConfig) {
		c.domain = domain
	}
}

// WithPrefix sets the local-part prefix for a generated address.
func WithPrefix(prefix string) GenerateOption {
	return func(c *generateConfig) {
		c.prefix = prefix
	}
}

// WithLimit sets the page size, between 1 and 100.
// Default: 20
func WithLimit(limit int) ListOption {
	return func(c *listConfig) {
		c.limit = limit
	}
}

// WithCursor continues a listing from a previous page's NextCursor.
func WithCursor(cursor string) ListOption {
	return func(c *listConfig) {
		c.cursor = cursor
	}
}

// WithPollTimeout sets the total time to wait for a new email. Zero means
// a single check.
// Default: 60 seconds
func WithPollTimeout(timeout time.Duration) PollOption {
	return func(c *pollConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the delay between checks.
// Default: 5 seconds
func WithPollInterval(interval time.Duration) PollOption {
	return func(c *pollConfig) {
		c.interval = interval
	}
}

// WithInitialCount sets the baseline email count. Without it the current
// total is fetched before polling starts.
func WithInitialCount(count int) PollOption {
	return func(c *pollConfig) {
		c.initialCount = &count
	}
}

// WithPollErrorPolicy chooses how listing errors are handled while polling.
func WithPollErrorPolicy(policy PollErrorPolicy) PollOption {
	return func(c *pollConfig) {
		c.errorPolicy = policy
	}
}

// WithPollLogger sets the logger for poll attempts. Client methods default
// to the client's logger.
func WithPollLogger(logger *slog.Logger) PollOption {
	return func(c *pollConfig) {
		c.logger = logger
	}
}

func (c *pollConfig) pollerConfig() delivery.PollConfig {
	return delivery.PollConfig{
		Timeout:      c.timeout,
		Interval:     c.interval,
		InitialCount: c.initialCount,
		ErrorPolicy:  c.errorPolicy,
		Logger:       c.logger,
		Clock:        c.clock,
	}
}

func newPollConfig(opts []PollOption) *pollConfig {
	cfg := &pollConfig{
		timeout:  defaultPollTimeout,
		interval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
