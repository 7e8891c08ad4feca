package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Text        string
	Done        bool
	Selected    bool
	Subtask     bool
	NoteCount   int
	Badge       string // subtask progress, e.g. "2/5"
	CompletedAt string // empty for pending tasks
	Late        bool
}

type TasksPanelData struct {
	Date       string
	DayNumber  int
	Rows       []TaskRowData
	InputLabel string
	InputView  string
}

type DashboardPanelData struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

type CalendarCellData struct {
	Day        int
	IsToday    bool
	IsSelected bool
	HasTasks   bool
}

type CalendarGridData struct {
	Title         string // e.g. "January 2024"
	LeadingBlanks int
	Cells         []CalendarCellData
}

type BarData struct {
	Label     string
	Completed int
	Pending   int
}

type TrendBarData struct {
	Label   string
	Percent int
}

type ChartsPanelData struct {
	Weekly           []BarData
	DistributionDone int
	DistributionOpen int
	Trend            []TrendBarData
	Monthly          []BarData
}

type NoteData struct {
	Preview string
	Editing bool
}

type NotesPanelData struct {
	TaskText    string
	Notes       []NoteData
	EditorView  string
	EditorLabel string
}

type SummaryEntryData struct {
	SubtaskText string
	Done        bool
	Notes       []string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tasks: %s (Day %d)\n", data.Date, data.DayNumber)
	b.WriteString("actions: [a]dd [s]ubtask [space]toggle [d]clear-done [enter]notes [h/l]day\n")
	if data.InputView != "" {
		fmt.Fprintf(&b, "%s %s\n", data.InputLabel, data.InputView)
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(no tasks for this day)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		b.WriteString("\n" + renderTaskRow(row))
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	box := "[ ]"
	if row.Done {
		box = "[x]"
	}
	indent := ""
	if row.Subtask {
		indent = "  "
	}
	text := row.Text
	if row.Done {
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s%s %s", cursor, indent, box, text)
	if row.Badge != "" {
		line += fmt.Sprintf(" (%s)", row.Badge)
	}
	if row.NoteCount > 0 {
		line += fmt.Sprintf(" [%d notes]", row.NoteCount)
	}
	if row.CompletedAt != "" {
		if row.Late {
			line += fmt.Sprintf(" done %s (late)", row.CompletedAt)
		} else {
			line += fmt.Sprintf(" done %s", row.CompletedAt)
		}
	}
	return line
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	fmt.Fprintf(&b, "total: %d | completed: %d | pending: %d\n", data.Total, data.Completed, data.Pending)
	fmt.Fprintf(&b, "progress: %s %d%%", bar(float64(data.Percent)/100, 30), data.Percent)
	return b.String()
}

func RenderCalendarGrid(data CalendarGridData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "calendar: %s\n", data.Title)
	b.WriteString("actions: [h/l]month [j/k]day [enter]open [t]oday\n\n")
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")

	col := 0
	for i := 0; i < data.LeadingBlanks; i++ {
		b.WriteString("    ")
		col++
	}
	for _, cell := range data.Cells {
		b.WriteString(renderCalendarCell(cell))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	out := strings.TrimRight(b.String(), " \n")
	return out + "\n\nlegend: *today >selected .has-tasks"
}

func renderCalendarCell(cell CalendarCellData) string {
	mark := " "
	switch {
	case cell.IsSelected:
		mark = ">"
	case cell.IsToday:
		mark = "*"
	case cell.HasTasks:
		mark = "."
	}
	return fmt.Sprintf("%s%2d ", mark, cell.Day)
}

func RenderChartsPanel(data ChartsPanelData) string {
	var b strings.Builder
	b.WriteString("charts:\n")

	b.WriteString("\nweekly activity:\n")
	for _, p := range data.Weekly {
		fmt.Fprintf(&b, "%s %s %d done / %d open\n", p.Label, stackedBar(p.Completed, p.Pending, 20), p.Completed, p.Pending)
	}

	total := data.DistributionDone + data.DistributionOpen
	b.WriteString("\ndistribution:\n")
	frac := 0.0
	if total > 0 {
		frac = float64(data.DistributionDone) / float64(total)
	}
	fmt.Fprintf(&b, "completed %d vs pending %d %s\n", data.DistributionDone, data.DistributionOpen, bar(frac, 20))

	b.WriteString("\ncompletion trend (14d):\n")
	for _, p := range data.Trend {
		fmt.Fprintf(&b, "%3s %s %d%%\n", p.Label, bar(float64(p.Percent)/100, 20), p.Percent)
	}

	b.WriteString("\nmonthly overview:\n")
	for _, p := range data.Monthly {
		fmt.Fprintf(&b, "%s %s %d/%d\n", p.Label, stackedBar(p.Completed, p.Pending, 20), p.Completed, p.Completed+p.Pending)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "notes: %s\n", data.TaskText)
	b.WriteString("actions: [a]dd [e]dit [x]delete [esc]back\n")
	if data.EditorView != "" {
		fmt.Fprintf(&b, "%s\n%s\n", data.EditorLabel, data.EditorView)
	}
	if len(data.Notes) == 0 {
		b.WriteString("\n(no notes yet)")
		return strings.TrimSpace(b.String())
	}
	for i, note := range data.Notes {
		marker := " "
		if note.Editing {
			marker = ">"
		}
		fmt.Fprintf(&b, "\n%s note %d:\n%s\n", marker, i+1, note.Preview)
	}
	return strings.TrimSpace(b.String())
}

// RenderNotesSummary lists a parent's subtasks with their notes, the
// counterpart of the email body for in-app reading.
func RenderNotesSummary(entries []SummaryEntryData) string {
	if len(entries) == 0 {
		return "summary:\n(no subtasks)"
	}
	var b strings.Builder
	b.WriteString("summary:\n")
	for _, e := range entries {
		status := "pending"
		if e.Done {
			status = "done"
		}
		fmt.Fprintf(&b, "\n%s [%s]\n", e.SubtaskText, status)
		if len(e.Notes) == 0 {
			b.WriteString("  (no notes)\n")
			continue
		}
		for _, n := range e.Notes {
			b.WriteString("  - " + n + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelpPanel(bindings []string) string {
	return "help:\n" + strings.Join(bindings, "\n")
}

func bar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// stackedBar shows the done and open halves of a count in one bar.
func stackedBar(completed, pending, width int) string {
	total := completed + pending
	if total == 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}
	done := completed * width / total
	open := width - done
	return "[" + strings.Repeat("#", done) + strings.Repeat("-", open) + "]"
}
