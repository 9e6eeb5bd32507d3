package api

import "time"

// DomainsResponse represents the GET /domains response.
type DomainsResponse struct {
	Domains []string `json:"domains"`
}

// GenerateEmailRequest represents the POST /mailbox request.
type GenerateEmailRequest struct {
	Domain string `json:"domain,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// GenerateEmailResponse represents the POST /mailbox response.
type GenerateEmailResponse struct {
	Email string `json:"email"`
}

// EmailSummary is one entry of the GET /mailbox/{address} listing.
type EmailSummary struct {
	ID             string    `json:"id"`
	From           string    `json:"from"`
	Subject        string    `json:"subject"`
	TextPreview    string    `json:"textPreview"`
	ReceivedAt     time.Time `json:"receivedAt"`
	HasAttachments bool      `json:"hasAttachments"`
}

// EmailList represents the GET /mailbox/{address} response.
type EmailList struct {
	Data       []EmailSummary `json:"data"`
	NextCursor *string        `json:"nextCursor"`
	Total      int            `json:"total"`
}

// AttachmentMeta describes an attachment in the GET /email/{id} response.
type AttachmentMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// EmailDetail represents the GET /email/{id} response.
type EmailDetail struct {
	ID             string           `json:"id"`
	From           string           `json:"from"`
	To             []string         `json:"to"`
	Subject        string           `json:"subject"`
	HTML           string           `json:"html"`
	Text           string           `json:"text"`
	ReceivedAt     time.Time        `json:"receivedAt"`
	HasAttachments bool             `json:"hasAttachments"`
	Attachments    []AttachmentMeta `json:"attachments"`
}

// DeleteEmailResponse represents the DELETE /email/{id} response.
type DeleteEmailResponse struct {
	Success bool `json:"success"`
}

// DeleteMailboxResponse represents the DELETE /mailbox/{address} response.
type DeleteMailboxResponse struct {
	Deleted int `json:"deleted"`
}
