package vanish

import "context"

// QueryFunc lists the mailbox at address. It may be called many times
// during a single poll.
type QueryFunc func(ctx context.Context, address string) (*PaginatedEmailList, error)

// PollForNewEmail polls query until the mailbox total exceeds its baseline
// and returns the first email of that page. Without WithInitialCount the
// baseline is the total of a query made before polling starts.
//
// It returns nil, nil when the timeout passes without a new email. The
// last check happens at or after the timeout; waits are shortened so the
// poll does not overshoot it by more than one query.
//
// Query errors end the poll unless PollErrorIgnore is set. Cancelling ctx
// returns ctx.Err().
func PollForNewEmail(ctx context.Context, query QueryFunc, address string, opts ...PollOption) (*EmailSummary, error) {
	return pollForNewEmail(ctx, query, address, newPollConfig(opts))
}
