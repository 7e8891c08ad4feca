// Package export renders the note collection for sharing: a CSV file
// and a plain-text email body, one note row or section per stored note.
package export

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"studytrack/internal/model"
)

var ErrNothingToExport = errors.New("export: no notes to export")

// withNotes filters to tasks carrying at least one note, keeping order.
func withNotes(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.HasNotes() {
			out = append(out, t)
		}
	}
	return out
}

// CSV renders every note as a row of
// Date, Day, Task, Note Number, Note Content. Note content is flattened
// to a single line with markup removed and quotes doubled; other fields
// are written as stored.
func CSV(tasks []model.Task, startDate string) (string, error) {
	noted := withNotes(tasks)
	if len(noted) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString("Date,Day,Task,Note Number,Note Content\n")
	for _, t := range noted {
		day := model.DayNumber(startDate, t.Date)
		for i, note := range t.Notes {
			plain := model.StripTags(note, "")
			plain = strings.ReplaceAll(plain, "\n", " ")
			plain = strings.ReplaceAll(plain, `"`, `""`)
			fmt.Fprintf(&b, "\"%s\",\"Day %d\",\"%s\",\"%d\",\"%s\"\n", t.Date, day, t.Text, i+1, plain)
		}
	}
	return b.String(), nil
}

// EmailBody renders the notes as a readable plain-text summary, one
// section per noted task, separated by rules of '=' characters.
func EmailBody(tasks []model.Task, startDate string) (string, error) {
	noted := withNotes(tasks)
	if len(noted) == 0 {
		return "", ErrNothingToExport
	}

	rule := strings.Repeat("=", 50)
	var b strings.Builder
	b.WriteString("Study Tracker - Notes Summary\n")
	b.WriteString(rule + "\n\n")
	for _, t := range noted {
		fmt.Fprintf(&b, "Date: %s (Day %d)\n", t.Date, model.DayNumber(startDate, t.Date))
		fmt.Fprintf(&b, "Task: %s\n", t.Text)
		if t.Done {
			b.WriteString("Status: Completed ✓\n")
		} else {
			b.WriteString("Status: Pending\n")
		}
		fmt.Fprintf(&b, "Number of Notes: %d\n", len(t.Notes))
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for i, note := range t.Notes {
			// Tags become line breaks so block markup reads as paragraphs.
			plain := strings.TrimSpace(model.StripTags(note, "\n"))
			fmt.Fprintf(&b, "\nNote %d:\n%s\n", i+1, plain)
		}
		b.WriteString("\n" + rule + "\n\n")
	}
	return b.String(), nil
}

// Filename names the CSV download for a given day.
func Filename(today string) string {
	return fmt.Sprintf("study-tracker-notes-%s.csv", today)
}

// EmailSubject names the email for a given day.
func EmailSubject(today string) string {
	return fmt.Sprintf("Study Tracker Notes - %s", today)
}

// MailtoLink builds a mailto URL carrying the subject and body, ready
// to hand to the system mail client.
func MailtoLink(subject, body string) string {
	return fmt.Sprintf("mailto:?subject=%s&body=%s", escapeComponent(subject), escapeComponent(body))
}

// escapeComponent percent-encodes for a mailto query, where spaces must
// be %20 rather than the form encoding's '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
