package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"studytrack/internal/config"
	"studytrack/internal/model"
	"studytrack/internal/tracker"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewCalendar View = "Calendar"
	ViewCharts   View = "Charts"
	ViewNotes    View = "Notes"
)

type CaptureMode string

const (
	CaptureNone    CaptureMode = ""
	CaptureTask    CaptureMode = "task"
	CaptureSubtask CaptureMode = "subtask"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// rowRef addresses one rendered line of the day list, top-level tasks
// and subtasks flattened in display order.
type rowRef struct {
	TaskID  int64
	Subtask bool
}

type CalendarState struct {
	Year  int
	Month time.Month
	Day   int
}

// NotesState tracks which task's notes are open and what the editor is
// doing. EditIndex is -1 while composing a new note.
type NotesState struct {
	TaskID    int64
	TaskText  string
	Cursor    int
	Editing   bool
	EditIndex int
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Model struct {
	CurrentView View
	Store       *tracker.Store
	Keys        config.Keymap
	Cursor      int
	Capture     CaptureMode
	Calendar    CalendarState
	Notes       NotesState
	HelpVisible bool
	Status      StatusBar
	Quitting    bool
	LastError   error

	rows      []rowRef
	taskInput textinput.Model
	noteArea  textarea.Model
	helpModel help.Model
}

func NewModel(store *tracker.Store, keys config.Keymap) Model {
	ti := textinput.New()
	ti.Placeholder = "task text"
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "note"
	ta.SetHeight(5)

	m := Model{
		CurrentView: ViewTasks,
		Store:       store,
		Keys:        keys,
		taskInput:   ti,
		noteArea:    ta,
		helpModel:   help.New(),
	}
	m.resetCalendar()
	m.syncRows()
	return m
}

// resetCalendar points the browser at the selected day's month.
func (m *Model) resetCalendar() {
	d, err := model.ParseDay(m.Store.SelectedDate())
	if err != nil {
		d = time.Now().UTC()
	}
	m.Calendar = CalendarState{Year: d.Year(), Month: d.Month(), Day: d.Day()}
}

// syncRows rebuilds the flattened day list and clamps the cursor.
func (m *Model) syncRows() {
	m.rows = m.rows[:0]
	for _, entry := range m.Store.VisibleTasksForDay(m.Store.SelectedDate()) {
		m.rows = append(m.rows, rowRef{TaskID: entry.Task.ID})
		for _, sub := range entry.Subtasks {
			m.rows = append(m.rows, rowRef{TaskID: sub.ID, Subtask: true})
		}
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) currentRow() (rowRef, bool) {
	if len(m.rows) == 0 || m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return rowRef{}, false
	}
	return m.rows[m.Cursor], true
}

// currentParentID is the task a new subtask would nest under: the row
// itself when it is top-level, its parent when the cursor sits on a
// subtask.
func (m Model) currentParentID() (int64, bool) {
	row, ok := m.currentRow()
	if !ok {
		return 0, false
	}
	if !row.Subtask {
		return row.TaskID, true
	}
	for _, t := range m.Store.Tasks() {
		if t.ID == row.TaskID && t.ParentID != nil {
			return *t.ParentID, true
		}
	}
	return 0, false
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m *Model) info(text string) {
	m.Status = StatusBar{Text: text, IsError: false}
}
