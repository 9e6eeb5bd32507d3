package vanish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanish/client-go/internal/api"
	"github.com/vanish/client-go/internal/apierrors"
	"github.com/vanish/client-go/internal/delivery"
)

// Client talks to the Vanish temporary-email API.
// A Client is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	logger    *slog.Logger
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     cfg.apiKey,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		MaxRetries: cfg.retries,
		RetryDelay: cfg.retryDelay,
		RetryOn:    cfg.retryOn,
		Logger:     cfg.logger,
	})
}

// New creates a new Vanish client. No request is made until a method is called.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	return &Client{
		apiClient: apiClient,
		logger:    cfg.logger,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// GetDomains returns the domains addresses can be generated under.
func (c *Client) GetDomains(ctx context.Context) ([]string, error) {
	return c.apiClient.GetDomains(ctx)
}

// GenerateEmail creates a new disposable address. Without options the
// server picks the domain and local part.
func (c *Client) GenerateEmail(ctx context.Context, opts ...GenerateOption) (string, error) {
	cfg := &generateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return c.apiClient.GenerateEmail(ctx, api.GenerateEmailRequest{
		Domain: cfg.domain,
		Prefix: cfg.prefix,
	})
}

// ListEmails returns one page of the mailbox at address, newest first.
func (c *Client) ListEmails(ctx context.Context, address string, opts ...ListOption) (*PaginatedEmailList, error) {
	cfg := &listConfig{limit: defaultListLimit}
	for _, opt := range opts {
		opt(cfg)
	}

	var limitMsg string
	if cfg.limit < 1 || cfg.limit > maxListLimit {
		limitMsg = fmt.Sprintf("limit must be between 1 and %d, got %d", maxListLimit, cfg.limit)
	}
	if err := apierrors.Validate(requireArg(address, "address"), limitMsg); err != nil {
		return nil, err
	}

	list, err := c.apiClient.ListEmails(ctx, address, cfg.limit, cfg.cursor)
	if err != nil {
		return nil, err
	}
	return newPaginatedEmailList(list), nil
}

// GetEmail fetches the full content of an email.
func (c *Client) GetEmail(ctx context.Context, emailID string) (*EmailDetail, error) {
	if err := apierrors.Validate(requireArg(emailID, "email ID")); err != nil {
		return nil, err
	}

	detail, err := c.apiClient.GetEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}
	return newEmailDetail(detail), nil
}

// GetAttachment downloads an attachment of an email.
func (c *Client) GetAttachment(ctx context.Context, emailID, attachmentID string) (*Attachment, error) {
	if err := apierrors.Validate(
		requireArg(emailID, "email ID"),
		requireArg(attachmentID, "attachment ID"),
	); err != nil {
		return nil, err
	}

	content, header, err := c.apiClient.GetAttachment(ctx, emailID, attachmentID)
	if err != nil {
		return nil, err
	}
	return newAttachment(content, header), nil
}

// DeleteEmail deletes an email and reports whether the server confirmed it.
func (c *Client) DeleteEmail(ctx context.Context, emailID string) (bool, error) {
	if err := apierrors.Validate(requireArg(emailID, "email ID")); err != nil {
		return false, err
	}
	return c.apiClient.DeleteEmail(ctx, emailID)
}

// DeleteMailbox deletes every email at address and returns how many were removed.
func (c *Client) DeleteMailbox(ctx context.Context, address string) (int, error) {
	if err := apierrors.Validate(requireArg(address, "address")); err != nil {
		return 0, err
	}
	return c.apiClient.DeleteMailbox(ctx, address)
}

// PollForNewEmail waits for the mailbox at address to grow past its
// baseline count and returns the newest email at that point. It returns
// nil, nil when no new email arrives within the poll timeout.
//
// Detection compares totals only: if emails are deleted while polling,
// an arrival that merely restores the old count is not reported.
func (c *Client) PollForNewEmail(ctx context.Context, address string, opts ...PollOption) (*EmailSummary, error) {
	cfg := newPollConfig(opts)
	if cfg.logger == nil {
		cfg.logger = c.logger
	}
	return pollForNewEmail(ctx, c.latestEmail, address, cfg)
}

// Mailbox returns a handle bound to address. No request is made.
func (c *Client) Mailbox(address string) *Mailbox {
	return &Mailbox{client: c, address: address}
}

// latestEmail lists a single entry, which is all a poll needs.
func (c *Client) latestEmail(ctx context.Context, address string) (*PaginatedEmailList, error) {
	return c.ListEmails(ctx, address, WithLimit(1))
}

// pollForNewEmail adapts a QueryFunc to the generic poller.
func pollForNewEmail(ctx context.Context, query QueryFunc, address string, cfg *pollConfig) (*EmailSummary, error) {
	var q delivery.QueryFunc[EmailSummary]
	if query != nil {
		q = func(ctx context.Context, address string) (int, []EmailSummary, error) {
			page, err := query(ctx, address)
			if err != nil {
				return 0, nil, err
			}
			if page == nil {
				return 0, nil, fmt.Errorf("query returned no page for %s", address)
			}
			return page.Total, page.Emails, nil
		}
	}
	return delivery.Poll(ctx, q, address, cfg.pollerConfig())
}

func requireArg(value, name string) string {
	if value == "" {
		return name + " is required"
	}
	return ""
}
