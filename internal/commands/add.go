package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/parser"
	"github.com/balkashynov/teamboard/internal/store"
	"github.com/balkashynov/teamboard/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task description]",
	Short: "Add a new task",
	Long: `Add a new task to the board.

Modes:
  Interactive: teamboard add -i (or just 'teamboard add' with no arguments)
  Quick: teamboard add "Task title" --due 3days (with optional flags)
  Smart parsing: teamboard add "Fix login bug @u2 +high due:3days"

Smart parsing syntax:
  @assignee      - Member id or first name (defaults to you)
  +priority      - Priority (low/medium/high or 1/2/3)
  due:3days      - Due date (today, tomorrow, yyyy-mm-dd, dd/mm/yyyy, X days, X weeks)
  status:doing   - Starting column (todo/doing/done)`,
	Args: cobra.ArbitraryArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		interactive, _ := cmd.Flags().GetBool("interactive")

		// If no args, go interactive
		if len(args) == 0 {
			interactive = true
		}

		parsed := parser.ParseTitle(strings.Join(args, " "), sess.store.Now())
		if err := applyAddFlags(cmd, &parsed, sess); err != nil {
			return err
		}

		// Parsing problems fall back to the form with what we have
		if len(parsed.Errors) > 0 && !interactive {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			fmt.Fprintln(cmd.OutOrStdout(), "Opening interactive mode for confirmation...")
			interactive = true
		}

		if interactive {
			task, err := tui.RunTaskFormTUI(sess.store, prefillFromParsed(parsed))
			if err != nil || task == nil {
				return err
			}
			printCreatedTask(cmd.OutOrStdout(), task, sess)
			return nil
		}

		in, err := inputFromParsed(parsed, sess)
		if err != nil {
			return err
		}
		checklist, _ := cmd.Flags().GetStringSlice("checklist")
		for _, text := range checklist {
			in.Checklist = append(in.Checklist, models.ChecklistItem{Text: text})
		}

		task, err := sess.store.CreateTask(in)
		if err != nil {
			return err
		}
		printCreatedTask(cmd.OutOrStdout(), task, sess)
		return nil
	}),
}

// applyAddFlags overrides parsed values with explicit flags (flags take precedence)
func applyAddFlags(cmd *cobra.Command, parsed *parser.ParsedTask, sess *session) error {
	if assignee, _ := cmd.Flags().GetString("assignee"); assignee != "" {
		parsed.Assignee = assignee
	}
	if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
		p, err := models.ParsePriority(priority)
		if err != nil {
			return err
		}
		parsed.Priority = p
	}
	if status, _ := cmd.Flags().GetString("status"); status != "" {
		s, err := models.ParseStatus(status)
		if err != nil {
			return err
		}
		parsed.Status = s
	}
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		d, err := parser.ParseDueDate(due, sess.store.Now())
		if err != nil {
			return fmt.Errorf("error parsing due date: %w", err)
		}
		parsed.DueDate = d
	}
	return nil
}

// inputFromParsed turns quick-add text into a create request
func inputFromParsed(parsed parser.ParsedTask, sess *session) (store.TaskInput, error) {
	assignee, err := resolveAssignee(parsed.Assignee, sess)
	if err != nil {
		return store.TaskInput{}, err
	}
	return store.TaskInput{
		Title:      parsed.Title,
		Status:     parsed.Status,
		AssigneeID: assignee,
		DueDate:    parsed.DueDate,
		Priority:   parsed.Priority,
	}, nil
}

// resolveAssignee accepts a member id or name; empty means the active member
func resolveAssignee(token string, sess *session) (string, error) {
	if token == "" {
		return sess.store.Identity().ID(), nil
	}
	m, err := sess.store.FindMember(token)
	if errors.Is(err, store.ErrNotFound) {
		// Unknown names are passed through so validation reports them
		return token, nil
	}
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func prefillFromParsed(parsed parser.ParsedTask) map[string]string {
	prefilled := map[string]string{"title": parsed.Title}
	if parsed.Assignee != "" {
		prefilled["assignee"] = parsed.Assignee
	}
	if parsed.Priority != "" {
		prefilled["priority"] = string(parsed.Priority)
	}
	if parsed.Status != "" {
		prefilled["status"] = string(parsed.Status)
	}
	if !parsed.DueDate.IsZero() {
		prefilled["due_date"] = parsed.DueDate.String()
	}
	return prefilled
}

func printCreatedTask(w io.Writer, task *models.Task, sess *session) {
	names, _ := memberNames(sess)

	fmt.Fprintf(w, "Created task #%d: %s\n", task.ID, task.Title)
	fmt.Fprintf(w, "  Assignee: %s\n", displayName(names, task.AssigneeID))
	fmt.Fprintf(w, "  Status: %s\n", task.Status)
	fmt.Fprintf(w, "  Priority: %s\n", task.Priority)
	fmt.Fprintf(w, "  Due: %s\n", parser.FormatDueDate(task.DueDate, sess.store.Now()))
	if len(task.Checklist) > 0 {
		fmt.Fprintf(w, "  Checklist: %d item(s)\n", len(task.Checklist))
	}
	if task.AssigneeID != sess.store.Identity().ID() {
		fmt.Fprintf(w, "🔔 %s has been notified\n", displayName(names, task.AssigneeID))
	}
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("assignee", "a", "", "Assignee member id or first name")
	addCmd.Flags().StringP("priority", "", "", "Priority: low, medium, high, or 1-3")
	addCmd.Flags().StringP("status", "", "", "Starting status: todo, doing, done")
	addCmd.Flags().StringP("due", "", "", "Due date: today, tomorrow, yyyy-mm-dd, dd/mm/yyyy, X days, X weeks")
	addCmd.Flags().StringSliceP("checklist", "c", []string{}, "Comma-separated checklist items")
}
