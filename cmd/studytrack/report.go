package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"studytrack/internal/model"
	"studytrack/internal/tracker"
)

var flagReportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a day's tasks and completion stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		date := flagReportDate
		if date == "" {
			date = store.Today()
		}
		printDayReport(store, date)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagReportDate, "date", "", "day to report on, YYYY-MM-DD (default today)")
}

func printDayReport(store *tracker.Store, date string) {
	title := color.New(color.Bold, color.Underline)
	_, _ = title.Printf("%s (Day %d)\n", date, store.DayNumber(date))

	entries := store.VisibleTasksForDay(date)
	if len(entries) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Println("no tasks")
	} else {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("", "TASK", "NOTES", "COMPLETED")
		for _, entry := range entries {
			tbl.AddRow(reportRow(entry.Task.Done, entry.Task.Text, len(entry.Task.Notes), completedCell(entry.Task))...)
			for _, sub := range entry.Subtasks {
				tbl.AddRow(reportRow(sub.Done, "  "+sub.Text, len(sub.Notes), completedCell(sub))...)
			}
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}

	st := store.DashboardStats(date)
	fmt.Printf("total %d | completed %d | pending %d | %d%%\n", st.Total, st.Completed, st.Pending, st.Percent)
}

func reportRow(done bool, text string, notes int, completed string) []interface{} {
	mark := color.New(color.FgYellow).Sprint("·")
	if done {
		mark = color.New(color.FgGreen).Sprint("✓")
		text = color.New(color.Faint).Sprint(text)
	}
	noteCell := ""
	if notes > 0 {
		noteCell = fmt.Sprintf("%d", notes)
	}
	return []interface{}{mark, text, noteCell, completed}
}

func completedCell(t model.Task) string {
	l, ok := tracker.CompletionLateness(t)
	if !ok {
		return ""
	}
	if l.OnTime {
		return l.CompletedAt.Format("15:04")
	}
	return l.CompletedAt.Format("2006-01-02 15:04") + " (late)"
}
