package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to another column",
	Long: `Move a task to any column: todo, doing or done.
Any column can be reached from any other, including the one the task is in.`,
	Args: cobra.ExactArgs(2),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid task ID '%s'", args[0])
		}
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}

		task, err := sess.store.SetTaskStatus(uint(taskID), status)
		if err != nil {
			return err
		}

		icon := "➡️ "
		if task.Status == models.StatusDone {
			icon = "✅"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Moved task #%d to %s: %s\n", icon, task.ID, task.Status, task.Title)
		return nil
	}),
}
