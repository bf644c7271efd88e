package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List team members",
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		members, err := sess.store.Members()
		if err != nil {
			return err
		}
		tasks, err := sess.store.Tasks()
		if err != nil {
			return err
		}
		renderMembers(cmd.OutOrStdout(), members, tasks, sess.store.Identity())
		return nil
	}),
}

func renderMembers(w io.Writer, members []models.TeamMember, tasks []models.Task, active models.Identity) {
	open := make(map[string]int)
	for _, t := range tasks {
		if t.Status != models.StatusDone {
			open[t.AssigneeID]++
		}
	}

	fmt.Fprintf(w, "  %-6s %-20s %s\n", "ID", "NAME", "OPEN TASKS")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, m := range members {
		marker := " "
		if m.ID == active.ID() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-6s %-20s %d\n", marker, m.ID, m.Name, open[m.ID])
	}
	fmt.Fprintf(w, "\nSigned in as: %s\n", active)
}
