package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/views"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [yyyy-mm]",
	Short: "Show tasks on a month calendar",
	Long: `Show a month grid with a marker on every day that has tasks due,
followed by the first tasks of each marked day.

Defaults to the current month.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		year, month, err := calendarMonth(args, sess.store.Now())
		if err != nil {
			return err
		}

		tasks, err := sess.store.Tasks()
		if err != nil {
			return err
		}

		m := views.BuildMonth(tasks, year, month)
		renderCalendar(cmd.OutOrStdout(), m, sess.cfg.WeekStart, models.DateOf(sess.store.Now()))
		return nil
	}),
}

// calendarMonth parses an optional yyyy-mm argument
func calendarMonth(args []string, now time.Time) (int, time.Month, error) {
	if len(args) == 0 {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(args[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month '%s'. Use: yyyy-mm", args[0])
	}
	return t.Year(), t.Month(), nil
}

func renderCalendar(w io.Writer, m views.Month, weekStart time.Weekday, today models.Date) {
	fmt.Fprintf(w, "%s %d\n\n", m.Month, m.Year)

	// Weekday header starting at weekStart
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(weekStart) + i) % 7)
		fmt.Fprintf(w, " %-4s", day.String()[:2])
	}
	fmt.Fprintln(w)

	col := m.LeadingBlanks(weekStart)
	fmt.Fprint(w, strings.Repeat("     ", col))
	for _, day := range m.Days {
		marker := " "
		switch {
		case day.Date == today && day.HasTasks():
			marker = "@"
		case day.Date == today:
			marker = "<"
		case day.HasTasks():
			marker = "*"
		}
		fmt.Fprintf(w, " %2d%s ", day.Date.Day, marker)

		col++
		if col%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if col%7 != 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "* tasks due   < today   @ today with tasks due")

	titles := make(map[uint]string)
	var busy []views.Day
	for _, day := range m.Days {
		if !day.HasTasks() {
			continue
		}
		busy = append(busy, day)
		for _, t := range day.Tasks {
			titles[t.ID] = t.Title
		}
	}
	if len(busy) == 0 {
		fmt.Fprintln(w, "\nNo tasks due this month.")
		return
	}

	fmt.Fprintln(w)
	for _, day := range busy {
		var previews []string
		for _, id := range day.Preview() {
			previews = append(previews, fmt.Sprintf("#%d %s", id, titles[id]))
		}
		line := strings.Join(previews, ", ")
		if n := day.Overflow(); n > 0 {
			line += fmt.Sprintf(" (+%d more)", n)
		}
		fmt.Fprintf(w, "%s  %s\n", day.Date.In(time.UTC).Format("Jan 02"), line)
	}
}
