//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"io"
	"net/smtp"
	"os"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
)

// getSMTPConfig returns SMTP host and port from environment.
// Called at test time (after TestMain loads .env).
func getSMTPConfig() (host, port string) {
	host = os.Getenv("SMTP_HOST")
	port = os.Getenv("SMTP_PORT")
	if port == "" {
		port = "25"
	}
	return host, port
}

// skipIfNoSMTP skips the test if SMTP is not configured.
func skipIfNoSMTP(t *testing.T) {
	t.Helper()
	host, _ := getSMTPConfig()
	if host == "" {
		t.Skip("skipping: SMTP_HOST not set")
	}
}

type testAttachment struct {
	name    string
	content []byte
}

// sendTestEmail sends a multipart email with a text body, an optional HTML
// body and optional attachments.
func sendTestEmail(t *testing.T, to, subject, text, html string, attachments ...testAttachment) {
	t.Helper()
	skipIfNoSMTP(t)

	from := "test@example.com"

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	var msg bytes.Buffer
	mw, err := mail.CreateWriter(&msg, h)
	if err != nil {
		t.Fatalf("CreateWriter() error = %v", err)
	}

	inline, err := mw.CreateInline()
	if err != nil {
		t.Fatalf("CreateInline() error = %v", err)
	}
	writePart(t, inline, "text/plain", text)
	if html != "" {
		writePart(t, inline, "text/html", html)
	}
	if err := inline.Close(); err != nil {
		t.Fatalf("close inline: %v", err)
	}

	for _, a := range attachments {
		var ah mail.AttachmentHeader
		ah.Set("Content-Type", "application/octet-stream")
		ah.SetFilename(a.name)
		w, err := mw.CreateAttachment(ah)
		if err != nil {
			t.Fatalf("CreateAttachment() error = %v", err)
		}
		if _, err := w.Write(a.content); err != nil {
			t.Fatalf("write attachment: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close attachment: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close message: %v", err)
	}

	host, port := getSMTPConfig()
	addr := fmt.Sprintf("%s:%s", host, port)
	if err := smtp.SendMail(addr, nil, from, []string{to}, msg.Bytes()); err != nil {
		t.Fatalf("sendTestEmail() error = %v", err)
	}
	t.Logf("Sent email to %s with subject: %s", to, subject)
}

func writePart(t *testing.T, inline *mail.InlineWriter, contentType, body string) {
	t.Helper()
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	w, err := inline.CreatePart(ph)
	if err != nil {
		t.Fatalf("CreatePart(%s) error = %v", contentType, err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		t.Fatalf("write %s: %v", contentType, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close %s: %v", contentType, err)
	}
}
