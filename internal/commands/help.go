package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for teamboard",
	Long:  `Display detailed help for all teamboard commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp(cmd.OutOrStdout())
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
 _                       _                         _
| |_ ___  __ _ _ __ ___ | |__   ___   __ _ _ __ __| |
| __/ _ \/ _' | '_ ' _ \| '_ \ / _ \ / _' | '__/ _' |
| ||  __/ (_| | | | | | | |_) | (_) | (_| | | | (_| |
 \__\___|\__,_|_| |_| |_|_.__/ \___/ \__,_|_|  \__,_|

teamboard - Team Kanban Board

COMMANDS:

  (no command)            Open the interactive board

    Quick actions:
      ←/→ ↑/↓       Navigate columns and cards
      [ / ]         Move card to previous/next column
      enter         Open task details
      +             New task
      /             Search titles
      a             Cycle assignee filter
      s             Cycle status filter
      n             Notifications (opening marks all read)
      c             Calendar
      t             Timesheet
      f             Feedback
      esc/q         Back / quit

  board                   Show the board as text
    -a, --assignee        Filter by member id, or all
    -s, --status          Filter by status: todo|doing|done|all
    -t, --title           Filter by title substring
    --json                JSON output

  add <task>              Create a new task with smart parsing
    -a, --assignee        Member id or first name
    --priority            Priority: low|medium|high
    --status              Starting status: todo|doing|done
    --due                 Due date (today, 25/07/2024, 3days, 2w)
    -c, --checklist       Comma-separated checklist items
    -i, --interactive     Open the task form

    Smart syntax:
      @assignee     Assign to member (id or first name)
      +priority     Set priority (low/medium/high)
      due:3days     Set due date (3 days from now)
      status:doing  Start in another column

    Example:
      teamboard add "Fix login bug @bruno +high due:+2d"

  move <id> <status>      Move a task to todo, doing or done

  calendar [yyyy-mm]      Month view of due dates
  timesheet               Your completed tasks and feedback from the last 7 days

  feedback                List feedback
    --to, --from          Filter by recipient or author
  feedback give <id> <text>
                          Leave feedback for a teammate
  feedback edit <id> <text>
                          Edit feedback you wrote

  members                 List team members
  notifications           Show notifications
    --mine                Only those addressed to you
    --clear               Mark all read

  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:

  --as <identity>         Act as a member id, "guest", or "" (signed out)
  --env <path>            Dotenv config file (default .env)

Every run starts a fresh session from the starter data; nothing is saved.

`)
}
