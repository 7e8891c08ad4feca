package tracker

import (
	"fmt"
	"time"

	"studytrack/internal/model"
)

// CalendarCell is one day of the browsed month.
type CalendarCell struct {
	Day        int
	Date       string
	IsToday    bool
	IsSelected bool
	HasTasks   bool
}

// CalendarMonth is the derived state of the month grid. LeadingBlanks
// is the number of empty cells before day 1, equal to its weekday
// (Sunday = 0).
type CalendarMonth struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Cells         []CalendarCell
}

func (s *Store) CalendarMonth(year int, month time.Month) CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := s.Today()

	hasTasks := make(map[string]bool, len(s.tasks))
	for _, t := range s.tasks {
		hasTasks[t.Date] = true
	}

	cm := CalendarMonth{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Cells:         make([]CalendarCell, 0, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		cm.Cells = append(cm.Cells, CalendarCell{
			Day:        day,
			Date:       date,
			IsToday:    date == today,
			IsSelected: date == s.selectedDate,
			HasTasks:   hasTasks[date],
		})
	}
	return cm
}

// monthOf is the (year, month) a day string falls in; the zero month
// signals an unparseable date, which bucketing then skips.
func monthOf(date string) (int, time.Month) {
	d, err := model.ParseDay(date)
	if err != nil {
		return 0, 0
	}
	return d.Year(), d.Month()
}
