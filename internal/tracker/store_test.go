package tracker

import (
	"errors"
	"testing"
	"time"

	"studytrack/internal/model"
	"studytrack/internal/storage"
)

type seqIDs struct{ next int64 }

func (g *seqIDs) Next() int64 {
	g.next++
	return g.next
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func openStore(t *testing.T, kv storage.KV, clock func() time.Time) *Store {
	t.Helper()
	s, err := Open(kv, WithClock(clock), WithIDGenerator(&seqIDs{}))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestOpenDefaultsToToday(t *testing.T) {
	s := openStore(t, storage.NewMemory(), fixedClock("2024-01-10T08:00:00Z"))
	if s.SelectedDate() != "2024-01-10" {
		t.Fatalf("expected selected date today, got %s", s.SelectedDate())
	}
	if s.StartDate() != "2024-01-10" {
		t.Fatalf("expected start date anchored to first selected date, got %s", s.StartDate())
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected empty store, got %d tasks", len(s.Tasks()))
	}
}

func TestAddTaskAndPersistence(t *testing.T) {
	kv := storage.NewMemory()
	s := openStore(t, kv, fixedClock("2024-01-10T08:00:00Z"))

	task, err := s.AddTask("  read chapter 2  ", "")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Text != "read chapter 2" || task.Date != "2024-01-10" {
		t.Fatalf("unexpected task: %#v", task)
	}
	if task.Done || task.CompletedAt != nil || task.ParentID != nil {
		t.Fatalf("unexpected new task state: %#v", task)
	}

	if _, err := s.AddTask("   ", ""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got: %v", err)
	}
	if _, err := s.AddTask("x", "not-a-day"); !errors.Is(err, model.ErrBadDay) {
		t.Fatalf("expected ErrBadDay, got: %v", err)
	}

	// A fresh store over the same KV sees the flushed state.
	reopened := openStore(t, kv, fixedClock("2024-01-11T08:00:00Z"))
	if len(reopened.Tasks()) != 1 || reopened.Tasks()[0].Text != "read chapter 2" {
		t.Fatalf("expected persisted task, got %#v", reopened.Tasks())
	}
	if reopened.SelectedDate() != "2024-01-10" {
		t.Fatalf("expected persisted selected date, got %s", reopened.SelectedDate())
	}
	if reopened.StartDate() != "2024-01-10" {
		t.Fatalf("expected persisted start date, got %s", reopened.StartDate())
	}
}

func TestAddSubtask(t *testing.T) {
	s := openStore(t, storage.NewMemory(), fixedClock("2024-01-10T08:00:00Z"))
	parent, err := s.AddTask("parent", "")
	if err != nil {
		t.Fatalf("add parent: %v", err)
	}

	sub, err := s.AddSubtask(parent.ID, "child")
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	if sub.ParentID == nil || *sub.ParentID != parent.ID {
		t.Fatalf("expected subtask linked to parent, got %#v", sub.ParentID)
	}
	if sub.ID == parent.ID {
		t.Fatal("subtask id must differ from parent id")
	}

	if _, err := s.AddSubtask(parent.ID, " "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got: %v", err)
	}
	if _, err := s.AddSubtask(9999, "orphan"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got: %v", err)
	}
}

func TestClockIDsDistinctWithinInstant(t *testing.T) {
	g := &clockIDs{now: fixedClock("2024-01-10T08:00:00Z")}
	a, b, c := g.Next(), g.Next(), g.Next()
	if a == b || b == c || a == c {
		t.Fatalf("expected distinct ids, got %d %d %d", a, b, c)
	}
	if b != a+1 || c != b+1 {
		t.Fatalf("expected monotonic bump, got %d %d %d", a, b, c)
	}
}

func TestToggleDoneMaintainsCompletedAt(t *testing.T) {
	s := openStore(t, storage.NewMemory(), fixedClock("2024-01-10T21:30:00Z"))
	task, _ := s.AddTask("t", "")

	if err := s.ToggleDone(task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got := s.Tasks()[0]
	if !got.Done || got.CompletedAt == nil {
		t.Fatalf("expected done with timestamp, got %#v", got)
	}
	if !got.CompletedAt.Equal(fixedClock("2024-01-10T21:30:00Z")()) {
		t.Fatalf("unexpected completion time: %v", got.CompletedAt)
	}

	if err := s.ToggleDone(task.ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	got = s.Tasks()[0]
	if got.Done || got.CompletedAt != nil {
		t.Fatalf("expected pending with nil timestamp, got %#v", got)
	}

	if err := s.ToggleDone(424242); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got: %v", err)
	}
}

func TestDeleteDoneForDate(t *testing.T) {
	s := openStore(t, storage.NewMemory(), fixedClock("2024-01-10T08:00:00Z"))
	parent, _ := s.AddTask("parent", "")
	sub, _ := s.AddSubtask(parent.ID, "pending child")
	doneTop, _ := s.AddTask("done top", "")
	_ = s.ToggleDone(parent.ID)
	_ = s.ToggleDone(doneTop.ID)
	other, _ := s.AddTask("other day", "2024-01-11")
	_ = s.ToggleDone(other.ID)

	removed, err := s.DeleteDoneForDate("2024-01-10")
	if err != nil {
		t.Fatalf("delete done: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	left := s.Tasks()
	if len(left) != 2 {
		t.Fatalf("expected 2 tasks left, got %#v", left)
	}
	// The pending subtask survives its parent with a dangling reference.
	if left[0].ID != sub.ID || left[0].ParentID == nil || *left[0].ParentID != parent.ID {
		t.Fatalf("expected orphaned subtask kept, got %#v", left[0])
	}
	if left[1].ID != other.ID || !left[1].Done {
		t.Fatalf("expected other-day task untouched, got %#v", left[1])
	}

	removed, err = s.DeleteDoneForDate("2024-01-10")
	if err != nil || removed != 0 {
		t.Fatalf("expected no-op second pass, got removed=%d err=%v", removed, err)
	}
}

func TestNotesLifecycle(t *testing.T) {
	s := openStore(t, storage.NewMemory(), fixedClock("2024-01-10T08:00:00Z"))
	task, _ := s.AddTask("t", "")

	if err := s.AddNote(task.ID, "<div><br></div>"); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText for empty markup, got: %v", err)
	}
	for _, body := range []string{"<b>first</b>", "second", "third"} {
		if err := s.AddNote(task.ID, body); err != nil {
			t.Fatalf("add note %q: %v", body, err)
		}
	}

	if err := s.UpdateNote(task.ID, 1, "second, revised"); err != nil {
		t.Fatalf("update note: %v", err)
	}
	if err := s.UpdateNote(task.ID, 3, "x"); !errors.Is(err, ErrNoteOutOfRange) {
		t.Fatalf("expected ErrNoteOutOfRange, got: %v", err)
	}

	if err := s.DeleteNote(task.ID, 0); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	notes := s.Tasks()[0].Notes
	if len(notes) != 2 || notes[0] != "second, revised" || notes[1] != "third" {
		t.Fatalf("expected later notes shifted down, got %#v", notes)
	}

	if err := s.DeleteNote(task.ID, 2); !errors.Is(err, ErrNoteOutOfRange) {
		t.Fatalf("expected ErrNoteOutOfRange, got: %v", err)
	}
	if len(s.Tasks()[0].Notes) != 2 {
		t.Fatal("failed delete must leave notes unchanged")
	}
	if err := s.DeleteNote(task.ID, -1); !errors.Is(err, ErrNoteOutOfRange) {
		t.Fatalf("expected ErrNoteOutOfRange for negative index, got: %v", err)
	}
}

func TestDayNavigation(t *testing.T) {
	kv := storage.NewMemory()
	s := openStore(t, kv, fixedClock("2024-01-10T08:00:00Z"))

	if err := s.ChangeDay(-1); err != nil {
		t.Fatalf("change day: %v", err)
	}
	if s.SelectedDate() != "2024-01-09" {
		t.Fatalf("expected previous day, got %s", s.SelectedDate())
	}
	// The anchor does not move with navigation.
	if s.StartDate() != "2024-01-10" {
		t.Fatalf("start date must not move, got %s", s.StartDate())
	}

	if err := s.SelectDate("2024-02-01"); err != nil {
		t.Fatalf("select date: %v", err)
	}
	if err := s.GoToToday(); err != nil {
		t.Fatalf("go to today: %v", err)
	}
	if s.SelectedDate() != "2024-01-10" {
		t.Fatalf("expected today, got %s", s.SelectedDate())
	}
	if err := s.SelectDate("bogus"); !errors.Is(err, model.ErrBadDay) {
		t.Fatalf("expected ErrBadDay, got: %v", err)
	}
}

func TestOpenMigratesLegacyPayload(t *testing.T) {
	kv := storage.NewMemory()
	legacy := `[{"text":"old","done":false,"notes":"one note","id":5}]`
	if err := kv.Save(storage.KeyTasks, legacy); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	if err := kv.Save(storage.KeySelectedDate, "2024-01-03"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	s := openStore(t, kv, fixedClock("2024-01-10T08:00:00Z"))
	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Date != "2024-01-10" {
		t.Fatalf("expected dateless record on today, got %s", tasks[0].Date)
	}
	if len(tasks[0].Notes) != 1 || tasks[0].Notes[0] != "one note" {
		t.Fatalf("expected wrapped legacy note, got %#v", tasks[0].Notes)
	}
	if s.StartDate() != "2024-01-03" {
		t.Fatalf("expected start date from persisted selected date, got %s", s.StartDate())
	}
}
