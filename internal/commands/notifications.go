package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notifs"},
	Short:   "Show notifications",
	Long: `Show the session's notifications, oldest first, with unread ones marked.
Pass --clear to mark them all read afterwards.`,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		mine, _ := cmd.Flags().GetBool("mine")
		clearAfter, _ := cmd.Flags().GetBool("clear")

		var (
			list []models.Notification
			err  error
		)
		if mine {
			list, err = sess.store.NotificationsFor(sess.store.Identity().ID())
		} else {
			list, err = sess.store.Notifications()
		}
		if err != nil {
			return err
		}

		renderNotifications(cmd.OutOrStdout(), list)

		if clearAfter {
			return sess.store.ClearNotifications()
		}
		return nil
	}),
}

func renderNotifications(w io.Writer, list []models.Notification) {
	if len(list) == 0 {
		fmt.Fprintln(w, "🔕 No notifications.")
		return
	}

	unread := 0
	for _, n := range list {
		marker := "  "
		if !n.Read {
			marker = "● "
			unread++
		}
		fmt.Fprintf(w, "%s%s\n", marker, n.Message)
	}
	fmt.Fprintf(w, "\n🔔 %d unread\n", unread)
}

func init() {
	notificationsCmd.Flags().Bool("mine", false, "Only notifications addressed to the active identity")
	notificationsCmd.Flags().Bool("clear", false, "Mark all notifications read")
}
