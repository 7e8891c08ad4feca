package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

// openNotes switches to the notes view for a task.
func (m *Model) openNotes(taskID int64) {
	text := ""
	for _, t := range m.Store.Tasks() {
		if t.ID == taskID {
			text = t.Text
			break
		}
	}
	m.Notes = NotesState{TaskID: taskID, TaskText: text, EditIndex: -1}
	m.CurrentView = ViewNotes
}

func (m Model) currentNotes() []string {
	for _, t := range m.Store.Tasks() {
		if t.ID == m.Notes.TaskID {
			return t.Notes
		}
	}
	return nil
}

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	notes := m.currentNotes()
	switch msg.String() {
	case "up", m.Keys.Up:
		if m.Notes.Cursor > 0 {
			m.Notes.Cursor--
		}
	case "down", m.Keys.Down:
		if m.Notes.Cursor < len(notes)-1 {
			m.Notes.Cursor++
		}
	case m.Keys.Add:
		m.Notes.Editing = true
		m.Notes.EditIndex = -1
		m.noteArea.SetValue("")
		m.noteArea.Focus()
	case "e":
		if m.Notes.Cursor < len(notes) {
			m.Notes.Editing = true
			m.Notes.EditIndex = m.Notes.Cursor
			m.noteArea.SetValue(notes[m.Notes.Cursor])
			m.noteArea.Focus()
		}
	case "x":
		if err := m.Store.DeleteNote(m.Notes.TaskID, m.Notes.Cursor); err != nil {
			m.fail(err)
			break
		}
		if m.Notes.Cursor > 0 {
			m.Notes.Cursor--
		}
		m.info("note deleted")
	case m.Keys.Cancel, m.Keys.Quit:
		m.CurrentView = ViewTasks
		m.syncRows()
	}
	return m
}

// handleNoteEditorKey runs while the textarea is focused. ctrl+s saves
// so plain enter stays available for new lines.
func (m Model) handleNoteEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Cancel:
		m.Notes.Editing = false
		m.noteArea.Blur()
		return m
	case "ctrl+s":
		body := m.noteArea.Value()
		var err error
		if m.Notes.EditIndex < 0 {
			err = m.Store.AddNote(m.Notes.TaskID, body)
		} else {
			err = m.Store.UpdateNote(m.Notes.TaskID, m.Notes.EditIndex, body)
		}
		if err != nil {
			m.fail(err)
			return m
		}
		m.Notes.Editing = false
		m.noteArea.Blur()
		m.info("note saved")
		return m
	}
	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	_ = cmd
	return m
}
