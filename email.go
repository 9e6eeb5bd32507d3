package vanish

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/emersion/go-message"

	"github.com/vanish/client-go/internal/api"
)

// EmailSummary is one entry of a mailbox listing.
// It is a snapshot; later changes to the mailbox do not affect it.
type EmailSummary struct {
	ID             string    `json:"id"`
	From           string    `json:"from"`
	Subject        string    `json:"subject"`
	TextPreview    string    `json:"textPreview"`
	ReceivedAt     time.Time `json:"receivedAt"`
	HasAttachments bool      `json:"hasAttachments"`
}

// PaginatedEmailList is one page of a mailbox listing, newest first.
type PaginatedEmailList struct {
	Emails []EmailSummary `json:"emails"`
	// NextCursor is empty when there are no further pages.
	NextCursor string `json:"nextCursor,omitempty"`
	// Total is the number of emails in the mailbox at query time.
	Total int `json:"total"`
}

// HasMore reports whether another page can be requested with NextCursor.
func (p *PaginatedEmailList) HasMore() bool {
	return p.NextCursor != ""
}

// EmailDetail is the full content of an email.
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

// AttachmentMeta describes an attachment without its content.
type AttachmentMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Attachment is downloaded attachment content.
type Attachment struct {
	Content []byte
	// Headers are the HTTP response headers of the download.
	Headers http.Header
	// ContentType is the media type without parameters, if the server sent one.
	ContentType string
	// Filename comes from Content-Disposition, falling back to the Content-Type name parameter.
	Filename string
}

var (
	blankRuns     = regexp.MustCompile(`[^\S\n]+`)
	skippedBlocks = "script, style, head, meta, link"
	blockElements = "p, div, br, h1, h2, h3, h4, h5, h6, li, tr"
)

// Links returns the distinct hrefs of the HTML body in document order.
// Fragment-only links are skipped.
func (e *EmailDetail) Links() []string {
	if e.HTML == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(e.HTML))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}

// PlainText returns the text body, or the HTML body rendered as text when
// the email has no text part.
func (e *EmailDetail) PlainText() string {
	if strings.TrimSpace(e.Text) != "" || e.HTML == "" {
		return e.Text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(e.HTML))
	if err != nil {
		return ""
	}

	doc.Find(skippedBlocks).Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
	})

	text := blankRuns.ReplaceAllString(doc.Text(), " ")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func newEmailSummary(s api.EmailSummary) EmailSummary {
	return EmailSummary{
		ID:             s.ID,
		From:           s.From,
		Subject:        s.Subject,
		TextPreview:    s.TextPreview,
		ReceivedAt:     s.ReceivedAt,
		HasAttachments: s.HasAttachments,
	}
}

func newPaginatedEmailList(l *api.EmailList) *PaginatedEmailList {
	emails := make([]EmailSummary, 0, len(l.Data))
	for _, s := range l.Data {
		emails = append(emails, newEmailSummary(s))
	}

	var cursor string
	if l.NextCursor != nil {
		cursor = *l.NextCursor
	}

	return &PaginatedEmailList{
		Emails:     emails,
		NextCursor: cursor,
		Total:      l.Total,
	}
}

func newEmailDetail(d *api.EmailDetail) *EmailDetail {
	attachments := make([]AttachmentMeta, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		attachments = append(attachments, AttachmentMeta{
			ID:   a.ID,
			Name: a.Name,
			Type: a.Type,
			Size: a.Size,
		})
	}

	return &EmailDetail{
		ID:             d.ID,
		From:           d.From,
		To:             d.To,
		Subject:        d.Subject,
		HTML:           d.HTML,
		Text:           d.Text,
		ReceivedAt:     d.ReceivedAt,
		HasAttachments: d.HasAttachments,
		Attachments:    attachments,
	}
}

// newAttachment parses the MIME headers of an attachment download.
// Malformed headers leave ContentType or Filename empty.
func newAttachment(content []byte, header http.Header) *Attachment {
	att := &Attachment{Content: content, Headers: header}

	var typeParams map[string]string
	if v := header.Get("Content-Type"); v != "" {
		var h message.Header
		h.Set("Content-Type", v)
		if t, params, err := h.ContentType(); err == nil {
			att.ContentType = t
			typeParams = params
		}
	}
	if v := header.Get("Content-Disposition"); v != "" {
		var h message.Header
		h.Set("Content-Disposition", v)
		if _, params, err := h.ContentDisposition(); err == nil {
			att.Filename = params["filename"]
		}
	}
	if att.Filename == "" {
		att.Filename = typeParams["name"]
	}

	return att
}
