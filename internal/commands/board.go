package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/parser"
	"github.com/balkashynov/teamboard/internal/views"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"ls", "list"},
	Short:   "Show the task board",
	Long: `Show tasks grouped into To Do, In Progress and Done columns.

Filters combine: a task is shown only if it matches all of them.
  --assignee   member id, or "all"
  --status     todo, doing, done, or "all"
  --title      case-insensitive substring of the title`,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		filter, err := boardFilter(cmd)
		if err != nil {
			return err
		}

		tasks, err := sess.store.Tasks()
		if err != nil {
			return err
		}
		now := sess.store.Now()
		board := views.BuildBoard(tasks, filter, models.DateOf(now))

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeBoardJSON(cmd.OutOrStdout(), board)
		}

		names, err := memberNames(sess)
		if err != nil {
			return err
		}
		renderBoard(cmd.OutOrStdout(), board, names, now)
		return nil
	}),
}

// boardFilter builds a board filter from command flags
func boardFilter(cmd *cobra.Command) (views.Filter, error) {
	assignee, _ := cmd.Flags().GetString("assignee")
	status, _ := cmd.Flags().GetString("status")
	title, _ := cmd.Flags().GetString("title")

	filter := views.Filter{AssigneeID: assignee, Title: title, Status: views.All}
	if status != "" && !strings.EqualFold(status, views.All) {
		s, err := models.ParseStatus(status)
		if err != nil {
			return views.Filter{}, err
		}
		filter.Status = string(s)
	}
	return filter, nil
}

// memberNames maps member ids to display names
func memberNames(sess *session) (map[string]string, error) {
	members, err := sess.store.Members()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	return names, nil
}

func renderBoard(w io.Writer, board views.Board, names map[string]string, now time.Time) {
	if board.Total() == 0 {
		fmt.Fprintln(w, "No tasks match the current filters.")
		return
	}

	for i, col := range board.Columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", col.Status, len(col.Cards))
		fmt.Fprintln(w, strings.Repeat("-", 80))
		if len(col.Cards) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		for _, card := range col.Cards {
			renderCard(w, card, names, now)
		}
	}
}

func renderCard(w io.Writer, card views.Card, names map[string]string, now time.Time) {
	task := card.Task

	title := truncateTitle(task.Title, 38)

	assignee := names[task.AssigneeID]
	if assignee == "" {
		assignee = task.AssigneeID
	}

	fmt.Fprintf(w, "%-4d %-40s %-16s %-7s %s\n",
		task.ID,
		title,
		assignee,
		task.Priority,
		parser.FormatDueDate(task.DueDate, now))

	var extras []string
	if done, total := task.ChecklistProgress(); total > 0 {
		extras = append(extras, fmt.Sprintf("checklist %d/%d", done, total))
	}
	if n := len(task.Attachments); n > 0 {
		extras = append(extras, fmt.Sprintf("%d attachment(s)", n))
	}
	if task.VoiceNoteRef != "" {
		extras = append(extras, "voice note")
	}
	if len(extras) > 0 {
		fmt.Fprintf(w, "     %s\n", strings.Join(extras, " · "))
	}
}

// truncateTitle shortens a title to at most width terminal cells
func truncateTitle(title string, width int) string {
	return ansi.Truncate(title, width, "...")
}

type boardJSON struct {
	Columns []columnJSON `json:"columns"`
}

type columnJSON struct {
	Status models.Status `json:"status"`
	Tasks  []cardJSON    `json:"tasks"`
}

type cardJSON struct {
	models.Task
	Urgency string `json:"urgency"`
}

func writeBoardJSON(w io.Writer, board views.Board) error {
	out := boardJSON{Columns: make([]columnJSON, 0, len(board.Columns))}
	for _, col := range board.Columns {
		cj := columnJSON{Status: col.Status, Tasks: make([]cardJSON, 0, len(col.Cards))}
		for _, card := range col.Cards {
			cj.Tasks = append(cj.Tasks, cardJSON{Task: card.Task, Urgency: card.Urgency.String()})
		}
		out.Columns = append(out.Columns, cj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	boardCmd.Flags().StringP("assignee", "a", views.All, "Filter by assignee id, or \"all\"")
	boardCmd.Flags().StringP("status", "s", views.All, "Filter by status: todo, doing, done, or \"all\"")
	boardCmd.Flags().StringP("title", "t", "", "Filter by title substring (case-insensitive)")
	boardCmd.Flags().Bool("json", false, "JSON output")
}
