package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"studytrack/internal/model"
	"studytrack/internal/storage"
)

var (
	ErrEmptyText      = errors.New("tracker: empty text")
	ErrTaskNotFound   = errors.New("tracker: task not found")
	ErrNoteOutOfRange = errors.New("tracker: note index out of range")
)

// IDGenerator hands out task ids. Ids must be unique across the store;
// the store never checks, it trusts the generator.
type IDGenerator interface {
	Next() int64
}

// clockIDs derives ids from wall-clock milliseconds the way the ids in
// historical data were minted, bumping by one when two calls land in
// the same instant so a batch of subtasks still gets distinct ids.
type clockIDs struct {
	now  func() time.Time
	last int64
}

func (g *clockIDs) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Store is the single source of truth: the ordered task collection
// plus the selected day and the day-numbering anchor. Every successful
// mutation flushes the full state to the KV collaborator.
type Store struct {
	kv  storage.KV
	now func() time.Time
	ids IDGenerator

	tasks        []model.Task
	selectedDate string
	startDate    string
}

type Option func(*Store)

// WithClock substitutes the wall clock, for tests and replay.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator substitutes the id source, for deterministic tests.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// Open loads the persisted state, migrating legacy task records to the
// current schema. Missing state defaults: selected date is today, the
// start anchor is the first selected date ever seen.
func Open(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = &clockIDs{now: s.now}
	}

	today := model.DayOf(s.now())

	raw, ok, err := kv.Load(storage.KeyTasks)
	if err != nil {
		return nil, fmt.Errorf("tracker: load tasks: %w", err)
	}
	if ok {
		s.tasks = model.MigrateTasks([]byte(raw), today)
	} else {
		s.tasks = []model.Task{}
	}

	s.selectedDate, ok, err = kv.Load(storage.KeySelectedDate)
	if err != nil {
		return nil, fmt.Errorf("tracker: load selected date: %w", err)
	}
	if !ok || s.selectedDate == "" {
		s.selectedDate = today
	}

	s.startDate, ok, err = kv.Load(storage.KeyStartDate)
	if err != nil {
		return nil, fmt.Errorf("tracker: load start date: %w", err)
	}
	if !ok || s.startDate == "" {
		s.startDate = s.selectedDate
	}
	return s, nil
}

// Tasks returns a copy of the collection in store order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) SelectedDate() string { return s.selectedDate }
func (s *Store) StartDate() string    { return s.startDate }

// Today is the clock's current calendar day.
func (s *Store) Today() string { return model.DayOf(s.now()) }

// AddTask appends a top-level task for the given day. An empty date
// means the selected day.
func (s *Store) AddTask(text, date string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	if date == "" {
		date = s.selectedDate
	}
	if _, err := model.ParseDay(date); err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:       s.ids.Next(),
		Text:     text,
		Date:     date,
		Notes:    []string{},
		Subtasks: []int64{},
	}
	s.tasks = append(s.tasks, t)
	if err := s.flush(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// AddSubtask appends a task nested under an existing parent. The
// subtask lands on the selected day, like the original capture flow.
func (s *Store) AddSubtask(parentID int64, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	if s.indexOf(parentID) < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	pid := parentID
	t := model.Task{
		ID:       s.ids.Next(),
		Text:     text,
		Date:     s.selectedDate,
		Notes:    []string{},
		ParentID: &pid,
		Subtasks: []int64{},
	}
	s.tasks = append(s.tasks, t)
	if err := s.flush(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// ToggleDone flips completion, stamping the completion time on the way
// to done and clearing it on the way back.
func (s *Store) ToggleDone(taskID int64) error {
	i := s.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.tasks[i].Done = !s.tasks[i].Done
	if s.tasks[i].Done {
		at := s.now()
		s.tasks[i].CompletedAt = &at
	} else {
		s.tasks[i].CompletedAt = nil
	}
	return s.flush()
}

// DeleteDoneForDate removes every completed task on the given day,
// subtasks included. Subtasks of a removed parent are not cascaded;
// a pending subtask outlives its parent with a dangling ParentID,
// which the queries tolerate.
func (s *Store) DeleteDoneForDate(date string) (int, error) {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Date == date && t.Done {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed == 0 {
		return 0, nil
	}
	if err := s.flush(); err != nil {
		return removed, err
	}
	return removed, nil
}

// AddNote appends a rich-text note. Markup with no text content is
// rejected so an empty editor never creates a note.
func (s *Store) AddNote(taskID int64, htmlBody string) error {
	if model.PlainText(htmlBody) == "" {
		return ErrEmptyText
	}
	i := s.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.tasks[i].Notes = append(s.tasks[i].Notes, strings.TrimSpace(htmlBody))
	return s.flush()
}

// UpdateNote replaces the note at noteIndex.
func (s *Store) UpdateNote(taskID int64, noteIndex int, htmlBody string) error {
	if model.PlainText(htmlBody) == "" {
		return ErrEmptyText
	}
	i := s.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	if noteIndex < 0 || noteIndex >= len(s.tasks[i].Notes) {
		return ErrNoteOutOfRange
	}
	s.tasks[i].Notes[noteIndex] = strings.TrimSpace(htmlBody)
	return s.flush()
}

// DeleteNote removes the note at noteIndex, shifting later notes down.
func (s *Store) DeleteNote(taskID int64, noteIndex int) error {
	i := s.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	notes := s.tasks[i].Notes
	if noteIndex < 0 || noteIndex >= len(notes) {
		return ErrNoteOutOfRange
	}
	s.tasks[i].Notes = append(notes[:noteIndex], notes[noteIndex+1:]...)
	return s.flush()
}

// SelectDate moves the viewed day.
func (s *Store) SelectDate(date string) error {
	if _, err := model.ParseDay(date); err != nil {
		return err
	}
	s.selectedDate = date
	return s.flush()
}

// ChangeDay shifts the viewed day by offset days.
func (s *Store) ChangeDay(offset int) error {
	return s.SelectDate(model.AddDays(s.selectedDate, offset))
}

// GoToToday jumps the viewed day to the clock's today.
func (s *Store) GoToToday() error {
	return s.SelectDate(s.Today())
}

func (s *Store) indexOf(taskID int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// flush writes the whole state. The in-memory store stays authoritative
// for the session when the backend fails; the error is surfaced, not
// retried.
func (s *Store) flush() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("tracker: encode tasks: %w", err)
	}
	if err := s.kv.Save(storage.KeyTasks, string(data)); err != nil {
		return fmt.Errorf("tracker: persist tasks: %w", err)
	}
	if err := s.kv.Save(storage.KeySelectedDate, s.selectedDate); err != nil {
		return fmt.Errorf("tracker: persist selected date: %w", err)
	}
	if err := s.kv.Save(storage.KeyStartDate, s.startDate); err != nil {
		return fmt.Errorf("tracker: persist start date: %w", err)
	}
	return nil
}
