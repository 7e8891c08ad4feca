package tracker

import (
	"time"

	"studytrack/internal/model"
)

// DayEntry pairs a top-level task with its subtasks in store order.
type DayEntry struct {
	Task     model.Task
	Subtasks []model.Task
}

// VisibleTasksForDay selects the top-level tasks of a day, each with
// the subtasks referencing it. Subtasks whose parent is gone are never
// surfaced here: rendering anchors on parents, so orphans stay
// invisible (they still count in stats and charts). That matches the
// historical behavior and is deliberate.
func (s *Store) VisibleTasksForDay(date string) []DayEntry {
	out := make([]DayEntry, 0)
	for _, t := range s.tasks {
		if t.Date != date || t.ParentID != nil {
			continue
		}
		entry := DayEntry{Task: t, Subtasks: []model.Task{}}
		for _, sub := range s.tasks {
			if sub.ParentID != nil && *sub.ParentID == t.ID {
				entry.Subtasks = append(entry.Subtasks, sub)
			}
		}
		out = append(out, entry)
	}
	return out
}

// DashboardStats counts every task of a day, subtasks included.
type DashboardStats struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

func (s *Store) DashboardStats(date string) DashboardStats {
	var st DashboardStats
	for _, t := range s.tasks {
		if t.Date != date {
			continue
		}
		st.Total++
		if t.Done {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	st.Percent = percent(st.Completed, st.Total)
	return st
}

// DayNumber is the 1-based day count of a date from the start anchor.
func (s *Store) DayNumber(date string) int {
	return model.DayNumber(s.startDate, date)
}

// Lateness describes when a completed task was finished relative to
// its scheduled day.
type Lateness struct {
	OnTime      bool
	CompletedAt time.Time
}

// CompletionLateness reports whether a done task was completed on its
// scheduled day. ok is false for pending tasks and for done tasks with
// no completion timestamp (possible in unmigrated-era data).
func CompletionLateness(t model.Task) (Lateness, bool) {
	if !t.Done || t.CompletedAt == nil {
		return Lateness{}, false
	}
	return Lateness{
		OnTime:      model.DayOf(*t.CompletedAt) == t.Date,
		CompletedAt: *t.CompletedAt,
	}, true
}

// SubtaskProgress counts a parent's subtasks, for the "2/5" badge.
func (s *Store) SubtaskProgress(parentID int64) (done, total int) {
	for _, t := range s.tasks {
		if t.ParentID == nil || *t.ParentID != parentID {
			continue
		}
		total++
		if t.Done {
			done++
		}
	}
	return done, total
}

// SubtaskNotes is one subtask with its notes, for the summary panel.
type SubtaskNotes struct {
	Task  model.Task
	Notes []string
}

// NotesSummary collects every subtask of a parent with its notes, in
// store order. Subtasks without notes are included so the summary can
// say so per subtask.
func (s *Store) NotesSummary(parentID int64) []SubtaskNotes {
	out := make([]SubtaskNotes, 0)
	for _, t := range s.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, SubtaskNotes{Task: t, Notes: t.Notes})
		}
	}
	return out
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	// round-half-up of 100*completed/total
	return (200*completed + total) / (2 * total)
}
