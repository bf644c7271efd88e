package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/store"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "List feedback",
	Long: `List feedback between team members, oldest first.

Use 'feedback give' to leave feedback and 'feedback edit' to change your own.`,
	Args: cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		to, _ := cmd.Flags().GetString("to")
		from, _ := cmd.Flags().GetString("from")

		all, err := sess.store.Feedback()
		if err != nil {
			return err
		}
		names, err := memberNames(sess)
		if err != nil {
			return err
		}

		renderFeedback(cmd.OutOrStdout(), filterFeedback(all, from, to), names)
		return nil
	}),
}

var feedbackGiveCmd = &cobra.Command{
	Use:   "give [member-id] [text]",
	Short: "Leave feedback for a teammate",
	Args:  cobra.MinimumNArgs(2),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		fb, err := sess.store.SubmitFeedback(store.FeedbackInput{
			ToID: args[0],
			Text: strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "💬 Feedback #%d sent to %s\n", fb.ID, fb.ToID)
		return nil
	}),
}

var feedbackEditCmd = &cobra.Command{
	Use:   "edit [feedback-id] [text]",
	Short: "Change the text of feedback you wrote",
	Args:  cobra.MinimumNArgs(2),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid feedback ID '%s'", args[0])
		}
		fb, err := sess.store.EditFeedback(uint(id), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✏️  Updated feedback #%d: %s\n", fb.ID, fb.Text)
		return nil
	}),
}

// filterFeedback keeps entries matching from and to; empty matches anything
func filterFeedback(all []models.Feedback, from, to string) []models.Feedback {
	var out []models.Feedback
	for _, fb := range all {
		if from != "" && fb.FromID != from {
			continue
		}
		if to != "" && fb.ToID != to {
			continue
		}
		out = append(out, fb)
	}
	return out
}

func renderFeedback(w io.Writer, entries []models.Feedback, names map[string]string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No feedback found.")
		return
	}

	fmt.Fprintf(w, "%-4s %-10s %-16s %-16s %s\n", "ID", "DATE", "FROM", "TO", "FEEDBACK")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, fb := range entries {
		fmt.Fprintf(w, "%-4d %-10s %-16s %-16s %s\n",
			fb.ID,
			fb.Date.In(time.UTC).Format("02/01/2006"),
			displayName(names, fb.FromID),
			displayName(names, fb.ToID),
			fb.Text)
	}
}

func init() {
	feedbackCmd.Flags().String("to", "", "Only feedback for this id")
	feedbackCmd.Flags().String("from", "", "Only feedback from this id")

	feedbackCmd.AddCommand(feedbackGiveCmd)
	feedbackCmd.AddCommand(feedbackEditCmd)
}
