// Package delivery detects newly arrived mail by polling a mailbox listing.
//
// # Polling
//
// [Poll] queries a mailbox at a fixed interval until its total email count
// rises above a baseline or a time budget is spent:
//
//	summary, err := delivery.Poll(ctx, query, "qa@vanish.host", delivery.PollConfig{
//	    Timeout:  time.Minute,
//	    Interval: 5 * time.Second,
//	})
//	if err != nil {
//	    // the query failed; the poll stopped immediately
//	}
//	if summary == nil {
//	    // nothing new arrived within the budget
//	}
//
// The first query runs immediately; waits happen only between queries and
// never overshoot the budget. A timeout of zero performs exactly one query.
//
// # Detection
//
// The count is the only arrival signal. A deletion followed by an arrival
// leaves the total unchanged and is not reported. Nothing is deduplicated
// across calls, so two concurrent polls of the same mailbox and baseline may
// both report the same arrival.
//
// # Errors
//
// With [ErrorPolicyFail] (the default) a query error ends the poll and is
// returned unchanged. [ErrorPolicyIgnore] logs the error and keeps polling
// until the budget is spent. Running out of time is not an error.
//
// # Thread Safety
//
// Poll keeps no shared state. Independent polls may run concurrently.
package delivery
