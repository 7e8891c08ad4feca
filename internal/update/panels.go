package update

import (
	"fmt"

	"studytrack/internal/model"
	"studytrack/internal/tracker"
	"studytrack/internal/views"
)

func (m Model) renderTasksView() string {
	data := views.TasksPanelData{
		Date:      m.Store.SelectedDate(),
		DayNumber: m.Store.DayNumber(m.Store.SelectedDate()),
	}
	if m.Capture != CaptureNone {
		data.InputView = m.taskInput.View()
		data.InputLabel = "new task:"
		if m.Capture == CaptureSubtask {
			data.InputLabel = "new subtask:"
		}
	}

	i := 0
	for _, entry := range m.Store.VisibleTasksForDay(m.Store.SelectedDate()) {
		data.Rows = append(data.Rows, m.taskRow(entry.Task, false, i))
		i++
		for _, sub := range entry.Subtasks {
			data.Rows = append(data.Rows, m.taskRow(sub, true, i))
			i++
		}
	}
	return views.RenderTasksPanel(data)
}

func (m Model) taskRow(t model.Task, subtask bool, index int) views.TaskRowData {
	row := views.TaskRowData{
		Text:      t.Text,
		Done:      t.Done,
		Selected:  index == m.Cursor,
		Subtask:   subtask,
		NoteCount: len(t.Notes),
	}
	if !subtask {
		if done, total := m.Store.SubtaskProgress(t.ID); total > 0 {
			row.Badge = fmt.Sprintf("%d/%d", done, total)
		}
	}
	if l, ok := tracker.CompletionLateness(t); ok {
		row.CompletedAt = l.CompletedAt.Format("15:04")
		row.Late = !l.OnTime
	}
	return row
}

func (m Model) renderDashboardView() string {
	st := m.Store.DashboardStats(m.Store.SelectedDate())
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Total:     st.Total,
		Completed: st.Completed,
		Pending:   st.Pending,
		Percent:   st.Percent,
	})
}

func (m Model) renderCalendarView() string {
	cm := m.Store.CalendarMonth(m.Calendar.Year, m.Calendar.Month)
	selectedDay, selectedVisible := m.selectedOnGrid()

	data := views.CalendarGridData{
		Title:         m.calendarTitle(),
		LeadingBlanks: cm.LeadingBlanks,
	}
	for _, cell := range cm.Cells {
		data.Cells = append(data.Cells, views.CalendarCellData{
			Day:        cell.Day,
			IsToday:    cell.IsToday,
			IsSelected: cell.Day == m.Calendar.Day || (selectedVisible && cell.Day == selectedDay),
			HasTasks:   cell.HasTasks,
		})
	}
	return views.RenderCalendarGrid(data)
}

func (m Model) renderChartsView() string {
	var data views.ChartsPanelData
	for _, p := range m.Store.WeeklyActivity() {
		data.Weekly = append(data.Weekly, views.BarData{Label: p.Weekday, Completed: p.Completed, Pending: p.Pending})
	}
	dist := m.Store.TaskDistribution()
	data.DistributionDone = dist.Completed
	data.DistributionOpen = dist.Pending
	for _, p := range m.Store.CompletionTrend() {
		data.Trend = append(data.Trend, views.TrendBarData{Label: fmt.Sprintf("%d", p.DayOfMonth), Percent: p.Percent})
	}
	for i, b := range m.Store.MonthlyOverview() {
		data.Monthly = append(data.Monthly, views.BarData{
			Label:     fmt.Sprintf("week %d", i+1),
			Completed: b.Completed,
			Pending:   b.Total - b.Completed,
		})
	}
	return views.RenderChartsPanel(data)
}

func (m Model) renderNotesView() string {
	data := views.NotesPanelData{TaskText: m.Notes.TaskText}
	for i, note := range m.currentNotes() {
		data.Notes = append(data.Notes, views.NoteData{
			Preview: views.RenderNote(note),
			Editing: i == m.Notes.Cursor,
		})
	}
	if m.Notes.Editing {
		data.EditorView = m.noteArea.View()
		data.EditorLabel = "editor (ctrl+s save, esc cancel):"
	}
	return views.RenderNotesPanel(data)
}

func (m Model) renderNotesSummaryView() string {
	entries := make([]views.SummaryEntryData, 0)
	for _, sn := range m.Store.NotesSummary(m.Notes.TaskID) {
		entry := views.SummaryEntryData{SubtaskText: sn.Task.Text, Done: sn.Task.Done}
		for _, n := range sn.Notes {
			entry.Notes = append(entry.Notes, model.PlainText(n))
		}
		entries = append(entries, entry)
	}
	return views.RenderNotesSummary(entries)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	k := m.Keys
	return "\n\n" + views.RenderHelpPanel([]string{
		fmt.Sprintf("%s/%s move", k.Up, k.Down),
		fmt.Sprintf("%q toggle done", k.Toggle),
		fmt.Sprintf("%s add task, %s add subtask", k.Add, k.AddSubtask),
		fmt.Sprintf("%s clear completed", k.ClearDone),
		fmt.Sprintf("%s open notes", k.Notes),
		fmt.Sprintf("%s/%s change day, %s today", k.PrevDay, k.NextDay, k.Today),
		fmt.Sprintf("%s/%s/%s switch view", k.TasksView, k.Calendar, k.Charts),
		fmt.Sprintf("%s quit", k.Quit),
	})
}
