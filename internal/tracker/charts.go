package tracker

import (
	"studytrack/internal/model"
)

// Chart datasets are derived from the full task set at call time and
// anchor on the clock's today, not the selected day.

// ActivityPoint is one day of the weekly activity chart.
type ActivityPoint struct {
	Date      string
	Weekday   string // short label, e.g. "Mon"
	Completed int
	Pending   int
}

// WeeklyActivity covers the 7 days ending today, oldest first.
func (s *Store) WeeklyActivity() []ActivityPoint {
	out := make([]ActivityPoint, 0, 7)
	today := s.Today()
	for i := 6; i >= 0; i-- {
		date := model.AddDays(today, -i)
		st := s.DashboardStats(date)
		label := date
		if d, err := model.ParseDay(date); err == nil {
			label = d.Format("Mon")
		}
		out = append(out, ActivityPoint{
			Date:      date,
			Weekday:   label,
			Completed: st.Completed,
			Pending:   st.Pending,
		})
	}
	return out
}

// Distribution is the global done/pending split over every task ever
// stored.
type Distribution struct {
	Completed int
	Pending   int
}

func (s *Store) TaskDistribution() Distribution {
	var d Distribution
	for _, t := range s.tasks {
		if t.Done {
			d.Completed++
		} else {
			d.Pending++
		}
	}
	return d
}

// TrendPoint is one day of the 14-day completion trend.
type TrendPoint struct {
	Date       string
	DayOfMonth int
	Percent    int
}

// CompletionTrend covers the 14 days ending today, oldest first. Days
// with no tasks score 0.
func (s *Store) CompletionTrend() []TrendPoint {
	out := make([]TrendPoint, 0, 14)
	today := s.Today()
	for i := 13; i >= 0; i-- {
		date := model.AddDays(today, -i)
		st := s.DashboardStats(date)
		dom := 0
		if d, err := model.ParseDay(date); err == nil {
			dom = d.Day()
		}
		out = append(out, TrendPoint{Date: date, DayOfMonth: dom, Percent: st.Percent})
	}
	return out
}

// WeekBucket is one bar pair of the monthly overview.
type WeekBucket struct {
	Total     int
	Completed int
}

// MonthlyOverview buckets the current month's tasks into 4 weeks by
// floor((day-1)/7), clamped so days 22-31 all land in week 4.
func (s *Store) MonthlyOverview() [4]WeekBucket {
	var buckets [4]WeekBucket
	year, month := monthOf(s.Today())
	for _, t := range s.tasks {
		ty, tm := monthOf(t.Date)
		if ty != year || tm != month {
			continue
		}
		d, err := model.ParseDay(t.Date)
		if err != nil {
			continue
		}
		w := (d.Day() - 1) / 7
		if w > 3 {
			w = 3
		}
		buckets[w].Total++
		if t.Done {
			buckets[w].Completed++
		}
	}
	return buckets
}
