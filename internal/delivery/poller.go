package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vanish/client-go/internal/apierrors"
)

// Default poll settings.
const (
	DefaultPollTimeout  = 60 * time.Second
	DefaultPollInterval = 5 * time.Second
)

// ErrorPolicy decides what a poll does when a query fails.
type ErrorPolicy int

const (
	// ErrorPolicyFail stops the poll and returns the query error unchanged.
	ErrorPolicyFail ErrorPolicy = iota
	// ErrorPolicyIgnore logs the query error and keeps polling until the budget is spent.
	ErrorPolicyIgnore
)

func (p ErrorPolicy) String() string {
	switch p {
	case ErrorPolicyFail:
		return "fail"
	case ErrorPolicyIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// QueryFunc reports a mailbox's total email count and its entries, newest first.
// It is called repeatedly and must not change mailbox state.
type QueryFunc[T any] func(ctx context.Context, address string) (total int, entries []T, err error)

// Clock abstracts time so polls can be driven deterministically.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// SystemClock returns the wall clock used when PollConfig.Clock is nil.
func SystemClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PollConfig configures a single Poll call.
type PollConfig struct {
	// Timeout is the wall-clock budget. Zero means exactly one query.
	Timeout time.Duration
	// Interval is the wait between queries. Must be positive.
	Interval time.Duration
	// InitialCount is the baseline total. When nil, a fresh query sets it.
	InitialCount *int
	// ErrorPolicy selects how query errors are handled.
	ErrorPolicy ErrorPolicy
	// Logger receives a debug record per query. Defaults to a discarding logger.
	Logger *slog.Logger
	// Clock defaults to the system clock.
	Clock Clock
}

// Validate reports every problem with polling address under c.
func (c *PollConfig) Validate(address string) error {
	var addressMsg, timeoutMsg, intervalMsg string
	if address == "" {
		addressMsg = "address is required"
	}
	if c.Timeout < 0 {
		timeoutMsg = fmt.Sprintf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.Interval <= 0 {
		intervalMsg = fmt.Sprintf("interval must be > 0, got %v", c.Interval)
	}
	return apierrors.Validate(addressMsg, timeoutMsg, intervalMsg)
}

// Poll queries address until its total exceeds the baseline and returns the
// first entry of that query. It returns nil, nil when the budget runs out.
//
// A query error ends the poll under ErrorPolicyFail. Cancelling ctx
// interrupts the wait and returns ctx.Err().
func Poll[T any](ctx context.Context, query QueryFunc[T], address string, cfg PollConfig) (*T, error) {
	if err := cfg.Validate(address); err != nil {
		return nil, err
	}
	if query == nil {
		return nil, apierrors.Validate("query function is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("address", address)

	start := clock.Now()

	var baseline int
	if cfg.InitialCount != nil {
		baseline = *cfg.InitialCount
	} else {
		total, _, err := query(ctx, address)
		if err != nil {
			return nil, err
		}
		baseline = total
		logger.DebugContext(ctx, "poll baseline", "total", total)
	}

	for attempt := 1; ; attempt++ {
		total, entries, err := query(ctx, address)
		switch {
		case err != nil && cfg.ErrorPolicy == ErrorPolicyFail:
			return nil, err
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WarnContext(ctx, "poll query failed", "attempt", attempt, "error", err)
		default:
			logger.DebugContext(ctx, "poll attempt",
				"attempt", attempt, "total", total, "baseline", baseline)
			if total > baseline && len(entries) > 0 {
				found := entries[0]
				return &found, nil
			}
		}

		elapsed := clock.Now().Sub(start)
		if elapsed >= cfg.Timeout {
			logger.DebugContext(ctx, "poll budget spent", "attempts", attempt, "elapsed", elapsed)
			return nil, nil
		}

		if err := clock.Sleep(ctx, min(cfg.Interval, cfg.Timeout-elapsed)); err != nil {
			return nil, err
		}
	}
}
