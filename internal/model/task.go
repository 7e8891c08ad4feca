package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyText = errors.New("model: task text is required")
	ErrBadDay    = errors.New("model: malformed day")
)

// DayLayout is the wire format for calendar days (YYYY-MM-DD).
const DayLayout = "2006-01-02"

// Task is one unit of work scheduled on a day. A task whose ParentID
// references another task's ID is a subtask of that task. The ParentID
// filter is the authoritative subtask relationship; the serialized
// Subtasks field is kept only so the JSON shape stays compatible with
// data written by older versions.
type Task struct {
	ID          int64      `json:"id"`
	Text        string     `json:"text"`
	Done        bool       `json:"done"`
	Date        string     `json:"date"`
	Notes       []string   `json:"notes"`
	CompletedAt *time.Time `json:"completedAt"`
	ParentID    *int64     `json:"parentId"`
	Subtasks    []int64    `json:"subtasks"`
}

func (t Task) Validate() error {
	if t.ID == 0 {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if _, err := ParseDay(t.Date); err != nil {
		return err
	}
	if t.Done && t.CompletedAt == nil {
		return errors.New("model: completedAt is required when task is done")
	}
	if !t.Done && t.CompletedAt != nil {
		return errors.New("model: completedAt must be nil when task is not done")
	}
	return nil
}

// IsSubtask reports whether the task is nested under a parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != nil
}

// HasNotes reports whether at least one note is attached.
func (t Task) HasNotes() bool {
	return len(t.Notes) > 0
}

func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDay, s)
	}
	return d, nil
}

// DayOf truncates a timestamp to its calendar day string.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// AddDays shifts a day string by n calendar days. Malformed input is
// returned unchanged so navigation never wedges on bad state.
func AddDays(day string, n int) string {
	d, err := ParseDay(day)
	if err != nil {
		return day
	}
	return DayOf(d.AddDate(0, 0, n))
}

// DayNumber is the 1-based offset of date from the start anchor.
// Day numbers before the anchor are zero or negative. Malformed input
// yields 0.
func DayNumber(startDate, date string) int {
	start, err := ParseDay(startDate)
	if err != nil {
		return 0
	}
	d, err := ParseDay(date)
	if err != nil {
		return 0
	}
	return int(d.Sub(start)/(24*time.Hour)) + 1
}
