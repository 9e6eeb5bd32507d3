package vanish

import "context"

// Mailbox is a handle on one disposable address.
type Mailbox struct {
	client  *Client
	address string
}

// Address returns the email address of the mailbox.
func (m *Mailbox) Address() string {
	return m.address
}

// ListEmails returns one page of the mailbox, newest first.
func (m *Mailbox) ListEmails(ctx context.Context, opts ...ListOption) (*PaginatedEmailList, error) {
	return m.client.ListEmails(ctx, m.address, opts...)
}

// Count returns the number of emails currently in the mailbox.
func (m *Mailbox) Count(ctx context.Context) (int, error) {
	page, err := m.client.latestEmail(ctx, m.address)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// WaitForNewEmail waits for an email to arrive. See Client.PollForNewEmail.
func (m *Mailbox) WaitForNewEmail(ctx context.Context, opts ...PollOption) (*EmailSummary, error) {
	return m.client.PollForNewEmail(ctx, m.address, opts...)
}

// Delete removes every email in the mailbox and returns how many were deleted.
func (m *Mailbox) Delete(ctx context.Context) (int, error) {
	return m.client.DeleteMailbox(ctx, m.address)
}
