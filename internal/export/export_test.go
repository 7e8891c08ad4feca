package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"studytrack/internal/model"
)

func notedTask(id int64, date, text string, notes ...string) model.Task {
	return model.Task{ID: id, Text: text, Date: date, Notes: notes, Subtasks: []int64{}}
}

func TestCSV(t *testing.T) {
	tasks := []model.Task{
		notedTask(1, "2024-01-03", "read chapter", `<b>key "insight"</b><br>line two`),
		{ID: 2, Text: "no notes", Date: "2024-01-03", Notes: []string{}},
		notedTask(3, "2024-01-05", "review", "first", "second"),
	}

	got, err := CSV(tasks, "2024-01-01")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "Date,Day,Task,Note Number,Note Content\n" +
		"\"2024-01-03\",\"Day 3\",\"read chapter\",\"1\",\"key \"\"insight\"\"line two\"\n" +
		"\"2024-01-05\",\"Day 5\",\"review\",\"1\",\"first\"\n" +
		"\"2024-01-05\",\"Day 5\",\"review\",\"2\",\"second\"\n"
	if got != want {
		t.Fatalf("csv mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSVFlattensNewlines(t *testing.T) {
	tasks := []model.Task{notedTask(1, "2024-01-01", "t", "line one\nline two")}
	got, err := CSV(tasks, "2024-01-01")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if !strings.Contains(got, "\"line one line two\"") {
		t.Fatalf("expected newline flattened to space, got:\n%s", got)
	}
}

func TestCSVNothingToExport(t *testing.T) {
	tasks := []model.Task{{ID: 1, Text: "bare", Date: "2024-01-01", Notes: []string{}}}
	if _, err := CSV(tasks, "2024-01-01"); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got: %v", err)
	}
	if _, err := EmailBody(nil, "2024-01-01"); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got: %v", err)
	}
}

func TestEmailBody(t *testing.T) {
	done := time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{
			ID: 1, Text: "read chapter", Date: "2024-01-03",
			Done: true, CompletedAt: &done,
			Notes: []string{"<p>first paragraph</p><p>second</p>"},
		},
		notedTask(2, "2024-01-05", "review", "short note"),
	}

	got, err := EmailBody(tasks, "2024-01-01")
	if err != nil {
		t.Fatalf("email body: %v", err)
	}

	if !strings.HasPrefix(got, "Study Tracker - Notes Summary\n"+strings.Repeat("=", 50)+"\n\n") {
		t.Fatalf("unexpected header:\n%s", got)
	}
	for _, want := range []string{
		"Date: 2024-01-03 (Day 3)\n",
		"Task: read chapter\n",
		"Status: Completed ✓\n",
		"Number of Notes: 1\n",
		strings.Repeat("-", 30) + "\n",
		"\nNote 1:\nfirst paragraph\n\nsecond\n",
		"Date: 2024-01-05 (Day 5)\n",
		"Status: Pending\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, strings.Repeat("=", 50)+"\n\n") {
		t.Fatalf("expected trailing rule, got:\n%s", got)
	}
}

func TestFilenames(t *testing.T) {
	if got := Filename("2024-01-10"); got != "study-tracker-notes-2024-01-10.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
	if got := EmailSubject("2024-01-10"); got != "Study Tracker Notes - 2024-01-10" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("Notes - 2024-01-10", "line one\nline two")
	if !strings.HasPrefix(link, "mailto:?subject=") {
		t.Fatalf("unexpected scheme: %s", link)
	}
	if strings.ContainsAny(link, " \n+") {
		t.Fatalf("expected fully escaped components: %s", link)
	}
	if !strings.Contains(link, "Notes%20-%202024-01-10") {
		t.Fatalf("expected %%20 space escaping: %s", link)
	}
}
