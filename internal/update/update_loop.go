package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"studytrack/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()

		if m.Capture != CaptureNone {
			return m.handleCaptureKey(typed), nil
		}
		if m.CurrentView == ViewNotes && m.Notes.Editing {
			return m.handleNoteEditorKey(typed), nil
		}

		switch keyStr {
		case m.Keys.TasksView:
			m.CurrentView = ViewTasks
			m.syncRows()
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			m.resetCalendar()
			return m, nil
		case m.Keys.Charts:
			m.CurrentView = ViewCharts
			return m, nil
		case m.Keys.ToggleHelp:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			if m.CurrentView == ViewNotes && keyStr == m.Keys.Quit {
				break
			}
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewNotes:
			return m.handleNotesKey(typed), nil
		}
		return m, nil

	case SwitchViewMsg:
		switch typed.View {
		case ViewTasks, ViewCalendar, ViewCharts, ViewNotes:
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderDashboardView() + m.renderHelpIfVisible()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderDashboardView() + m.renderHelpIfVisible()
	case ViewCharts:
		leftPane = m.renderChartsView()
		rightPane = m.renderHelpIfVisible()
	case ViewNotes:
		leftPane = m.renderNotesView()
		rightPane = m.renderNotesSummaryView() + m.renderHelpIfVisible()
	}

	selected := m.Store.SelectedDate()
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("studytrack | %s (Day %d) | view: %s", selected, m.Store.DayNumber(selected), m.CurrentView),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s tasks | %s calendar | %s charts | %s help | %s quit",
			m.Keys.TasksView, m.Keys.Calendar, m.Keys.Charts, m.Keys.ToggleHelp, m.Keys.Quit),
	})
}
