package vanish

import (
	"context"
	"slices"
	"sync"

	"github.com/vanish/client-go/internal/apierrors"
	"github.com/vanish/client-go/internal/delivery"
)

// Subscription represents an active subscription that can be unsubscribed.
type Subscription interface {
	// Unsubscribe stops the subscription and releases resources.
	Unsubscribe()
}

// EmailCallback is called when a new email arrives in a monitored mailbox.
type EmailCallback func(address string, email *EmailSummary)

// MailboxEvent is a new email seen by WatchMailboxes.
type MailboxEvent struct {
	Address string        `json:"address"`
	Email   *EmailSummary `json:"email"`
}

// MailboxMonitor polls several mailboxes and reports every new email.
//
// Each mailbox is polled on its own goroutine with the client's poll
// settings. Listing errors are logged and retried. Callbacks run on the
// polling goroutine of the mailbox that received the email, so emails of
// one mailbox are delivered oldest first.
type MailboxMonitor struct {
	client    *Client
	addresses []string
	opts      []PollOption
	callbacks []EmailCallback
	mu        sync.RWMutex
	started   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// internalSubscription implements the Subscription interface.
type internalSubscription struct {
	cancel func()
}

func (s *internalSubscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

// MonitorMailboxes creates a monitor for the given addresses. Polling
// starts with the first OnEmail call.
//
// The addresses and poll options are checked up front. An empty address,
// a negative timeout or a non-positive interval yields a *ValidationError.
func (c *Client) MonitorMailboxes(addresses []string, opts ...PollOption) (*MailboxMonitor, error) {
	if len(addresses) == 0 {
		return nil, apierrors.Validate("at least one address is required")
	}
	cfg := newPollConfig(opts).pollerConfig()
	for _, address := range addresses {
		if err := cfg.Validate(address); err != nil {
			return nil, err
		}
	}

	return &MailboxMonitor{
		client:    c,
		addresses: slices.Clone(addresses),
		opts:      slices.Clone(opts),
	}, nil
}

// OnEmail registers a callback to be called when a new email arrives in any monitored mailbox.
// Returns a Subscription that can be used to unsubscribe this specific callback.
func (m *MailboxMonitor) OnEmail(callback EmailCallback) Subscription {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, callback)
	callbackIndex := len(m.callbacks) - 1
	m.mu.Unlock()

	m.start(context.Background())

	return &internalSubscription{
		cancel: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			// Keep indices stable for the other subscriptions.
			if callbackIndex < len(m.callbacks) {
				m.callbacks[callbackIndex] = nil
			}
		},
	}
}

// Unsubscribe stops polling and drops all callbacks. It does not wait for
// in-flight callbacks to return.
func (m *MailboxMonitor) Unsubscribe() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.callbacks = nil
	m.started = false
}

// WatchMailboxes polls the given addresses until ctx is cancelled and
// sends every new email on the returned channel. The channel is closed
// once all polling goroutines have stopped. Arguments are validated as in
// MonitorMailboxes and no polling starts when they are rejected.
func (c *Client) WatchMailboxes(ctx context.Context, addresses []string, opts ...PollOption) (<-chan MailboxEvent, error) {
	m, err := c.MonitorMailboxes(addresses, opts...)
	if err != nil {
		return nil, err
	}
	events := make(chan MailboxEvent, len(addresses))

	m.mu.Lock()
	m.callbacks = append(m.callbacks, func(address string, email *EmailSummary) {
		select {
		case events <- MailboxEvent{Address: address, Email: email}:
		case <-ctx.Done():
		}
	})
	m.mu.Unlock()

	m.start(ctx)

	go func() {
		<-ctx.Done()
		m.Unsubscribe()
		m.wg.Wait()
		close(events)
	}()

	return events, nil
}

// start begins polling if not already started.
func (m *MailboxMonitor) start(parent context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel

	for _, address := range m.addresses {
		m.wg.Add(1)
		go m.watch(ctx, address)
	}
}

// watch runs back-to-back polls for one mailbox. Each poll starts from
// the last total seen, so deletions lower the baseline.
func (m *MailboxMonitor) watch(ctx context.Context, address string) {
	defer m.wg.Done()

	cfg := newPollConfig(m.opts)
	cfg.errorPolicy = PollErrorIgnore
	if cfg.logger == nil {
		cfg.logger = m.client.logger
	}
	clock := cfg.clock
	if clock == nil {
		clock = delivery.SystemClock()
	}
	logger := cfg.logger.With("address", address)

	var baseline int
	if cfg.initialCount != nil {
		baseline = *cfg.initialCount
	} else {
		for {
			page, err := m.client.latestEmail(ctx, address)
			if err == nil {
				baseline = page.Total
				break
			}
			if ctx.Err() != nil {
				return
			}
			logger.WarnContext(ctx, "watch baseline failed", "error", err)
			if clock.Sleep(ctx, cfg.interval) != nil {
				return
			}
		}
	}

	for {
		last := baseline
		query := func(ctx context.Context, address string) (*PaginatedEmailList, error) {
			page, err := m.client.latestEmail(ctx, address)
			if err == nil {
				last = page.Total
			}
			return page, err
		}

		start := baseline
		cfg.initialCount = &start
		email, err := pollForNewEmail(ctx, query, address, cfg)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.ErrorContext(ctx, "watch stopped", "error", err)
			return
		}
		if email != nil {
			m.emit(ctx, address, email, last-baseline)
		}
		baseline = last

		if clock.Sleep(ctx, cfg.interval) != nil {
			return
		}
	}
}

// emit reports arrived emails oldest first. When more than one email
// arrived between two checks, the newest ones are listed again.
func (m *MailboxMonitor) emit(ctx context.Context, address string, newest *EmailSummary, arrived int) {
	emails := []EmailSummary{*newest}
	if arrived > 1 {
		page, err := m.client.ListEmails(ctx, address, WithLimit(min(arrived, maxListLimit)))
		if err == nil && len(page.Emails) > 0 {
			emails = page.Emails
		} else if err != nil {
			m.client.logger.WarnContext(ctx, "list arrived emails", "address", address, "error", err)
		}
	}

	m.mu.RLock()
	callbacks := slices.Clone(m.callbacks)
	m.mu.RUnlock()

	for i := len(emails) - 1; i >= 0; i-- {
		email := emails[i]
		for _, callback := range callbacks {
			if callback != nil {
				callback(address, &email)
			}
		}
	}
}
