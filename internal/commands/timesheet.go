package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/views"
)

var timesheetCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Show your completed tasks and feedback from the last week",
	Long: `Show the active member's timesheet: tasks assigned to them that are Done,
and feedback they gave or received, dated within the last seven days.

Example output:
  Timesheet for Alice Chen since 13/07/2024

  Completed tasks
  #2    Set up project repository            17/07/2024

  Feedback
  17/07/2024  Mentor -> Alice Chen   Great ownership of the repository setup.`,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		id := sess.store.Identity()
		if !id.IsMember() {
			fmt.Fprintln(cmd.OutOrStdout(), "The timesheet is only available to signed-in team members.")
			return nil
		}

		tasks, err := sess.store.Tasks()
		if err != nil {
			return err
		}
		feedback, err := sess.store.Feedback()
		if err != nil {
			return err
		}
		names, err := memberNames(sess)
		if err != nil {
			return err
		}

		ts := views.BuildTimesheet(tasks, feedback, id.ID(), sess.store.Now())
		renderTimesheet(cmd.OutOrStdout(), ts, displayName(names, id.ID()), names)
		return nil
	}),
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

func renderTimesheet(w io.Writer, ts views.Timesheet, who string, names map[string]string) {
	fmt.Fprintf(w, "Timesheet for %s since %s\n\n", who, ts.Since.In(time.UTC).Format("02/01/2006"))

	fmt.Fprintln(w, "Completed tasks")
	if len(ts.Tasks) == 0 {
		fmt.Fprintln(w, "  No completed tasks this week.")
	}
	for _, t := range ts.Tasks {
		fmt.Fprintf(w, "#%-4d %-36s %s\n", t.ID, truncateTitle(t.Title, 35), t.DueDate.In(time.UTC).Format("02/01/2006"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Feedback")
	if len(ts.Feedback) == 0 {
		fmt.Fprintln(w, "  No feedback this week.")
	}
	for _, fb := range ts.Feedback {
		route := fmt.Sprintf("%s -> %s", displayName(names, fb.FromID), displayName(names, fb.ToID))
		fmt.Fprintf(w, "%s  %-24s %s\n", fb.Date.In(time.UTC).Format("02/01/2006"), route, fb.Text)
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "%d task(s) completed, %d feedback note(s)\n", len(ts.Tasks), len(ts.Feedback))
}
