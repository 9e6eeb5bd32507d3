package vanish

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

// countingQuery returns pages whose totals follow totals; the last one repeats.
func countingQuery(totals ...int) (QueryFunc, *int) {
	calls := 0
	return func(ctx context.Context, address string) (*PaginatedEmailList, error) {
		total := totals[min(calls, len(totals)-1)]
		calls++
		page := &PaginatedEmailList{Total: total, Emails: []EmailSummary{}}
		if total > 0 {
			page.Emails = append(page.Emails, EmailSummary{ID: "latest", Subject: "Hello"})
		}
		return page, nil
	}, &calls
}

func TestPollForNewEmail_Arrival(t *testing.T) {
	clock := newFakeClock()
	query, calls := countingQuery(0, 0, 0, 1)

	start := clock.Now()
	email, err := PollForNewEmail(context.Background(), query, "a@vanish.host",
		WithInitialCount(0), WithPollTimeout(10*time.Second),
		WithPollInterval(time.Second), withClock(clock))
	if err != nil {
		t.Fatalf("PollForNewEmail() error = %v", err)
	}
	if email == nil || email.ID != "latest" {
		t.Fatalf("email = %+v, want latest", email)
	}
	if *calls != 4 {
		t.Errorf("calls = %d, want 4", *calls)
	}
	if elapsed := clock.Now().Sub(start); elapsed != 3*time.Second {
		t.Errorf("elapsed = %v, want 3s", elapsed)
	}
}

func TestPollForNewEmail_Timeout(t *testing.T) {
	clock := newFakeClock()
	query, calls := countingQuery(2)

	email, err := PollForNewEmail(context.Background(), query, "a@vanish.host",
		WithInitialCount(2), WithPollTimeout(3*time.Second),
		WithPollInterval(time.Second), withClock(clock))
	if err != nil || email != nil {
		t.Fatalf("PollForNewEmail() = %+v, %v; want nil, nil", email, err)
	}
	// Checks at 0s, 1s, 2s and 3s.
	if *calls != 4 {
		t.Errorf("calls = %d, want 4", *calls)
	}
}

func TestPollForNewEmail_ZeroTimeoutQueriesOnce(t *testing.T) {
	clock := newFakeClock()
	query, calls := countingQuery(5)

	email, err := PollForNewEmail(context.Background(), query, "a@vanish.host",
		WithInitialCount(5), WithPollTimeout(0), withClock(clock))
	if err != nil || email != nil {
		t.Fatalf("PollForNewEmail() = %+v, %v; want nil, nil", email, err)
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}
}

func TestPollForNewEmail_BaselineFromQuery(t *testing.T) {
	clock := newFakeClock()
	// Baseline 3, then 3, then 4.
	query, calls := countingQuery(3, 3, 4)

	email, err := PollForNewEmail(context.Background(), query, "a@vanish.host",
		WithPollTimeout(time.Minute), WithPollInterval(time.Second), withClock(clock))
	if err != nil || email == nil {
		t.Fatalf("PollForNewEmail() = %+v, %v", email, err)
	}
	if *calls != 3 {
		t.Errorf("calls = %d, want 3", *calls)
	}
}

func TestPollForNewEmail_DecreaseIsNotArrival(t *testing.T) {
	clock := newFakeClock()
	query, _ := countingQuery(5, 4, 5)

	email, err := PollForNewEmail(context.Background(), query, "a@vanish.host",
		WithInitialCount(5), WithPollTimeout(5*time.Second),
		WithPollInterval(time.Second), withClock(clock))
	if err != nil || email != nil {
		t.Errorf("PollForNewEmail() = %+v, %v; want nil, nil", email, err)
	}
}

func TestPollForNewEmail_ErrorPolicy(t *testing.T) {
	queryErr := errors.New("boom")
	newQuery := func() QueryFunc {
		calls := 0
		return func(ctx context.Context, address string) (*PaginatedEmailList, error) {
			calls++
			if calls == 1 {
				return nil, queryErr
			}
			return &PaginatedEmailList{Total: 1, Emails: []EmailSummary{{ID: "e1"}}}, nil
		}
	}

	t.Run("fail", func(t *testing.T) {
		_, err := PollForNewEmail(context.Background(), newQuery(), "a@vanish.host",
			WithInitialCount(0), withClock(newFakeClock()))
		if !errors.Is(err, queryErr) {
			t.Errorf("error = %v, want %v", err, queryErr)
		}
	})

	t.Run("ignore", func(t *testing.T) {
		email, err := PollForNewEmail(context.Background(), newQuery(), "a@vanish.host",
			WithInitialCount(0), WithPollErrorPolicy(PollErrorIgnore), withClock(newFakeClock()))
		if err != nil || email == nil || email.ID != "e1" {
			t.Errorf("PollForNewEmail() = %+v, %v; want e1", email, err)
		}
	})
}

func TestPollForNewEmail_NilQuery(t *testing.T) {
	_, err := PollForNewEmail(context.Background(), nil, "a@vanish.host")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestPollForNewEmail_NilPage(t *testing.T) {
	query := func(ctx context.Context, address string) (*PaginatedEmailList, error) {
		return nil, nil
	}
	_, err := PollForNewEmail(context.Background(), query, "a@vanish.host",
		WithInitialCount(0), withClock(newFakeClock()))
	if err == nil {
		t.Error("PollForNewEmail() should fail when the query returns no page")
	}
}

func TestPollForNewEmail_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	query := func(ctx context.Context, address string) (*PaginatedEmailList, error) {
		cancel()
		return &PaginatedEmailList{Total: 0}, nil
	}

	_, err := PollForNewEmail(ctx, query, "a@vanish.host",
		WithInitialCount(0), withClock(newFakeClock()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestClient_PollForNewEmail(t *testing.T) {
	fake := newFakeMailboxes()
	fake.deliver("a@vanish.host", "old")
	// Call 1 is the baseline; the email lands before call 3.
	fake.onList = func(address string, call int) {
		if call == 3 {
			fake.deliver(address, "new")
		}
	}
	client := newTestClient(t, fake)

	email, err := client.PollForNewEmail(context.Background(), "a@vanish.host",
		WithPollTimeout(time.Minute), WithPollInterval(5*time.Second), withClock(newFakeClock()))
	if err != nil {
		t.Fatalf("PollForNewEmail() error = %v", err)
	}
	if email == nil || email.ID != "new" {
		t.Fatalf("email = %+v, want new", email)
	}
	if n := fake.listCalls("a@vanish.host"); n != 3 {
		t.Errorf("list calls = %d, want 3", n)
	}
}

func TestClient_PollForNewEmail_ListsOneEntry(t *testing.T) {
	var query string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		io.WriteString(w, `{"data":[],"nextCursor":null,"total":0}`)
	}))

	_, err := client.PollForNewEmail(context.Background(), "a@vanish.host",
		WithInitialCount(0), WithPollTimeout(0))
	if err != nil {
		t.Fatalf("PollForNewEmail() error = %v", err)
	}
	if query != "limit=1" {
		t.Errorf("query = %q, want limit=1", query)
	}
}

func TestClient_PollForNewEmail_MailboxNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"Mailbox not found"}`)
	}))

	_, err := client.Mailbox("gone@vanish.host").WaitForNewEmail(context.Background(),
		WithInitialCount(0), withClock(newFakeClock()))
	if !errors.Is(err, ErrMailboxNotFound) {
		t.Errorf("error = %v, want ErrMailboxNotFound", err)
	}
}
