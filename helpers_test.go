package vanish

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vanish/client-go/internal/delivery"
)

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}

func withClock(clock delivery.Clock) PollOption {
	return func(c *pollConfig) {
		c.clock = clock
	}
}

// fakeMailboxes serves GET /mailbox/{address} from in-memory mailboxes.
// Emails are stored oldest first and listed newest first.
type fakeMailboxes struct {
	mu        sync.Mutex
	mailboxes map[string][]EmailSummary
	lists     map[string]int
	// onList runs before each listing is served, with the call number.
	onList func(address string, call int)
}

func newFakeMailboxes() *fakeMailboxes {
	return &fakeMailboxes{
		mailboxes: make(map[string][]EmailSummary),
		lists:     make(map[string]int),
	}
}

func (f *fakeMailboxes) deliver(address string, ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.mailboxes[address] = append(f.mailboxes[address], EmailSummary{
			ID:      id,
			From:    "sender@example.com",
			Subject: "Subject " + id,
		})
	}
}

func (f *fakeMailboxes) remove(address, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mailboxes[address] = slices.DeleteFunc(f.mailboxes[address], func(e EmailSummary) bool {
		return e.ID == id
	})
}

// waitForLists blocks until address has been listed at least n times.
func (f *fakeMailboxes) waitForLists(t *testing.T, address string, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for f.listCalls(address) < n {
		if time.Now().After(deadline) {
			t.Fatalf("%s listed %d times, want at least %d", address, f.listCalls(address), n)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func (f *fakeMailboxes) listCalls(address string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists[address]
}

func (f *fakeMailboxes) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	address, ok := strings.CutPrefix(r.URL.Path, "/mailbox/")
	if !ok || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	f.lists[address]++
	call := f.lists[address]
	hook := f.onList
	f.mu.Unlock()

	if hook != nil {
		hook(address, call)
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, `{"error":"bad limit"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	emails := f.mailboxes[address]
	data := make([]map[string]any, 0, limit)
	for i := len(emails) - 1; i >= 0 && len(data) < limit; i-- {
		data = append(data, map[string]any{
			"id":      emails[i].ID,
			"from":    emails[i].From,
			"subject": emails[i].Subject,
		})
	}
	total := len(emails)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data":       data,
		"nextCursor": nil,
		"total":      total,
	})
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(append([]Option{WithBaseURL(server.URL)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func ids(emails []EmailSummary) string {
	parts := make([]string, len(emails))
	for i, e := range emails {
		parts[i] = e.ID
	}
	return fmt.Sprint(parts)
}
