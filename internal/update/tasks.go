package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", m.Keys.Up:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", m.Keys.Down:
		if m.Cursor < len(m.rows)-1 {
			m.Cursor++
		}
	case m.Keys.Toggle:
		if row, ok := m.currentRow(); ok {
			if err := m.Store.ToggleDone(row.TaskID); err != nil {
				m.fail(err)
			}
			m.syncRows()
		}
	case m.Keys.Add:
		m.Capture = CaptureTask
		m.taskInput.SetValue("")
		m.taskInput.Focus()
	case m.Keys.AddSubtask:
		if _, ok := m.currentParentID(); ok {
			m.Capture = CaptureSubtask
			m.taskInput.SetValue("")
			m.taskInput.Focus()
		}
	case m.Keys.ClearDone:
		removed, err := m.Store.DeleteDoneForDate(m.Store.SelectedDate())
		if err != nil {
			m.fail(err)
			break
		}
		m.info(fmt.Sprintf("removed %d completed", removed))
		m.syncRows()
	case m.Keys.Notes:
		if row, ok := m.currentRow(); ok {
			m.openNotes(row.TaskID)
		}
	case m.Keys.PrevDay:
		if err := m.Store.ChangeDay(-1); err != nil {
			m.fail(err)
		}
		m.Cursor = 0
		m.syncRows()
	case m.Keys.NextDay:
		if err := m.Store.ChangeDay(1); err != nil {
			m.fail(err)
		}
		m.Cursor = 0
		m.syncRows()
	case m.Keys.Today:
		if err := m.Store.GoToToday(); err != nil {
			m.fail(err)
		}
		m.Cursor = 0
		m.syncRows()
	}
	return m
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Cancel:
		m.Capture = CaptureNone
		m.taskInput.Blur()
		return m
	case m.Keys.Confirm:
		text := m.taskInput.Value()
		var err error
		switch m.Capture {
		case CaptureTask:
			_, err = m.Store.AddTask(text, "")
		case CaptureSubtask:
			if parentID, ok := m.currentParentID(); ok {
				_, err = m.Store.AddSubtask(parentID, text)
			}
		}
		if err != nil {
			m.fail(err)
			return m
		}
		m.Capture = CaptureNone
		m.taskInput.Blur()
		m.syncRows()
		return m
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	_ = cmd
	return m
}
