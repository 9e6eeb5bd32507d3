package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vanish/client-go/internal/apierrors"
)

// GetDomains lists the domains new addresses can be generated on.
func (c *Client) GetDomains(ctx context.Context) ([]string, error) {
	var result DomainsResponse
	if err := c.Do(ctx, http.MethodGet, "/domains", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Domains, nil
}

// GenerateEmail creates a new disposable address.
// The request carries no body when neither domain nor prefix is set.
func (c *Client) GenerateEmail(ctx context.Context, req GenerateEmailRequest) (string, error) {
	var body interface{}
	if req.Domain != "" || req.Prefix != "" {
		body = req
	}

	var result GenerateEmailResponse
	if err := c.Do(ctx, http.MethodPost, "/mailbox", nil, body, &result); err != nil {
		return "", err
	}
	if result.Email == "" {
		return "", fmt.Errorf("generate email: response did not include an address")
	}
	return result.Email, nil
}

// ListEmails lists one page of a mailbox. An empty cursor requests the first page.
func (c *Client) ListEmails(ctx context.Context, address string, limit int, cursor string) (*EmailList, error) {
	path := fmt.Sprintf("/mailbox/%s", url.PathEscape(address))
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("cursor", cursor)

	var result EmailList
	if err := c.Do(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceMailbox)
	}
	return &result, nil
}

// GetEmail fetches the full content of one email.
func (c *Client) GetEmail(ctx context.Context, emailID string) (*EmailDetail, error) {
	path := fmt.Sprintf("/email/%s", url.PathEscape(emailID))

	var result EmailDetail
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return &result, nil
}

// GetAttachment downloads an attachment's raw bytes and response headers.
func (c *Client) GetAttachment(ctx context.Context, emailID, attachmentID string) ([]byte, http.Header, error) {
	path := fmt.Sprintf("/email/%s/attachments/%s",
		url.PathEscape(emailID), url.PathEscape(attachmentID))

	content, header, err := c.DoRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, apierrors.WithResourceType(err, apierrors.ResourceAttachment)
	}
	return content, header, nil
}

// DeleteEmail deletes a single email and reports the server's success flag.
func (c *Client) DeleteEmail(ctx context.Context, emailID string) (bool, error) {
	path := fmt.Sprintf("/email/%s", url.PathEscape(emailID))

	var result DeleteEmailResponse
	if err := c.Do(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return false, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return result.Success, nil
}

// DeleteMailbox deletes every email of a mailbox and returns how many were removed.
func (c *Client) DeleteMailbox(ctx context.Context, address string) (int, error) {
	path := fmt.Sprintf("/mailbox/%s", url.PathEscape(address))

	var result DeleteMailboxResponse
	if err := c.Do(ctx, http.MethodDelete, path, nil, nil, &result); err != nil {
		return 0, apierrors.WithResourceType(err, apierrors.ResourceMailbox)
	}
	return result.Deleted, nil
}
