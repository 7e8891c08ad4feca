package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studytrack/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "left", m.Keys.PrevDay:
		m.shiftMonth(-1)
	case "right", m.Keys.NextDay:
		m.shiftMonth(1)
	case "up", m.Keys.Up:
		m.moveCalendarDay(-7)
	case "down", m.Keys.Down:
		m.moveCalendarDay(7)
	case m.Keys.Today:
		if err := m.Store.GoToToday(); err != nil {
			m.fail(err)
			break
		}
		m.resetCalendar()
	case m.Keys.Confirm:
		date := fmt.Sprintf("%04d-%02d-%02d", m.Calendar.Year, int(m.Calendar.Month), m.Calendar.Day)
		if err := m.Store.SelectDate(date); err != nil {
			m.fail(err)
			break
		}
		m.CurrentView = ViewTasks
		m.Cursor = 0
		m.syncRows()
	}
	return m
}

func (m *Model) shiftMonth(offset int) {
	first := time.Date(m.Calendar.Year, m.Calendar.Month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, offset, 0)
	m.Calendar.Year = next.Year()
	m.Calendar.Month = next.Month()
	if max := daysIn(m.Calendar.Year, m.Calendar.Month); m.Calendar.Day > max {
		m.Calendar.Day = max
	}
}

// moveCalendarDay walks the day cursor, rolling into the neighboring
// month at the edges.
func (m *Model) moveCalendarDay(offset int) {
	cur := time.Date(m.Calendar.Year, m.Calendar.Month, m.Calendar.Day, 0, 0, 0, 0, time.UTC)
	next := cur.AddDate(0, 0, offset)
	m.Calendar.Year = next.Year()
	m.Calendar.Month = next.Month()
	m.Calendar.Day = next.Day()
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// calendarTitle is the browsed month's heading, e.g. "January 2024".
func (m Model) calendarTitle() string {
	return fmt.Sprintf("%s %d", m.Calendar.Month.String(), m.Calendar.Year)
}

// selectedOnGrid reports whether the stored selected day falls inside
// the browsed month.
func (m Model) selectedOnGrid() (int, bool) {
	d, err := model.ParseDay(m.Store.SelectedDate())
	if err != nil {
		return 0, false
	}
	if d.Year() != m.Calendar.Year || d.Month() != m.Calendar.Month {
		return 0, false
	}
	return d.Day(), true
}
