// Package display provides terminal formatting for vanish CLI output.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vanish/client-go"
)

var (
	Muted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	Bold     = lipgloss.NewStyle().Bold(true)
	Success  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	Accent   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb"))
)

// maxBodyLines bounds how much of a body Email prints.
const maxBodyLines = 40

// TimeAgo formats t relative to now, e.g. "3 minutes ago".
func TimeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Size formats a byte count, e.g. "2.0 kB".
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Truncate shortens a string to maxLen runes, adding an ellipsis if needed.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// SuccessMsg prints a green checkmark and message.
func SuccessMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, Success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// ErrorMsg prints a red cross and message.
func ErrorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, ErrStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}

// EmailRow prints one line of a mailbox listing.
func EmailRow(w io.Writer, e vanish.EmailSummary) {
	clip := " "
	if e.HasAttachments {
		clip = "📎"
	}
	fmt.Fprintf(w, "  %s %s  %s  %s  %s\n",
		Muted.Render(e.ID),
		clip,
		Bold.Render(Truncate(e.From, 30)),
		Truncate(e.Subject, 50),
		Dim.Render(TimeAgo(e.ReceivedAt)),
	)
}

// EmailList prints a page of a mailbox listing.
func EmailList(w io.Writer, address string, page *vanish.PaginatedEmailList) {
	if len(page.Emails) == 0 {
		fmt.Fprintf(w, "%s is empty.\n", address)
		return
	}

	fmt.Fprintf(w, "%s (%d of %d):\n\n", Bold.Render(address), len(page.Emails), page.Total)
	for _, e := range page.Emails {
		EmailRow(w, e)
	}
	if page.HasMore() {
		fmt.Fprintf(w, "\n%s\n", Muted.Render("More: --cursor "+page.NextCursor))
	}
}

// Email prints the headers, attachments, body and links of an email.
func Email(w io.Writer, e *vanish.EmailDetail) {
	fmt.Fprintln(w, Bold.Render(e.Subject))
	fmt.Fprintf(w, "%s %s\n", Muted.Render("From:"), e.From)
	fmt.Fprintf(w, "%s %s\n", Muted.Render("To:  "), strings.Join(e.To, ", "))
	fmt.Fprintf(w, "%s %s (%s)\n", Muted.Render("Date:"),
		e.ReceivedAt.Local().Format(time.DateTime), TimeAgo(e.ReceivedAt))

	if len(e.Attachments) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Muted.Render("Attachments:"))
		for _, a := range e.Attachments {
			fmt.Fprintf(w, "  %s %s  %s  %s\n",
				Muted.Render(a.ID), a.Name, Dim.Render(a.Type), Size(a.Size))
		}
	}

	if body := strings.TrimSpace(e.PlainText()); body != "" {
		fmt.Fprintln(w)
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			if i >= maxBodyLines {
				fmt.Fprintln(w, Dim.Render(fmt.Sprintf("... (%d more lines)", len(lines)-maxBodyLines)))
				break
			}
			fmt.Fprintln(w, line)
		}
	}

	if links := e.Links(); len(links) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Muted.Render("Links:"))
		for _, link := range links {
			fmt.Fprintf(w, "  %s\n", Accent.Render(link))
		}
	}
}
