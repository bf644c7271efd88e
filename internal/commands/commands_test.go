package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/balkashynov/teamboard/internal/store"
)

var fixedNow = time.Date(2024, time.July, 20, 10, 30, 0, 0, time.Local)

// execute runs the root command against a fresh seeded session. Flags on the
// shared command tree keep their values between runs, so tests pass every
// flag they depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TEAMBOARD_LOG_FILE", "")
	t.Setenv("TEAMBOARD_LOG_LEVEL", "info")
	t.Setenv("TEAMBOARD_WEEK_START", "monday")

	clock = func() time.Time { return fixedNow }
	t.Cleanup(func() { clock = time.Now })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env", filepath.Join(t.TempDir(), "missing.env")))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("%v: unexpected error: %v", args, err)
	}
	return out
}

func boardArgs(extra ...string) []string {
	return append([]string{"board", "--as", "u1", "--assignee", "all", "--status", "all", "--title", "", "--json=false"}, extra...)
}

func TestBoard_SeedColumns(t *testing.T) {
	out := mustExecute(t, boardArgs()...)

	for _, want := range []string{"To Do (2)", "In Progress (2)", "Done (2)", "Design initial UI mockups", "Bruno Silva", "checklist 1/3", "OVERDUE"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBoard_StatusFilter(t *testing.T) {
	out := mustExecute(t, boardArgs("--status", "doing")...)

	if !strings.Contains(out, "To Do (0)") || !strings.Contains(out, "In Progress (2)") || !strings.Contains(out, "Done (0)") {
		t.Fatalf("expected only In Progress cards:\n%s", out)
	}

	if _, err := execute(t, boardArgs("--status", "blocked")...); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestBoard_JSONWithTitleFilter(t *testing.T) {
	out := mustExecute(t, boardArgs("--title", "MOCKUP", "--json")...)

	var decoded struct {
		Columns []struct {
			Status string `json:"status"`
			Tasks  []struct {
				ID        uint   `json:"id"`
				Title     string `json:"title"`
				DueDate   string `json:"due_date"`
				Urgency   string `json:"urgency"`
				Checklist []struct {
					Text string `json:"text"`
				} `json:"checklist"`
			} `json:"tasks"`
		} `json:"columns"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(decoded.Columns) != 3 || decoded.Columns[0].Status != "To Do" {
		t.Fatalf("unexpected columns: %+v", decoded.Columns)
	}
	tasks := decoded.Columns[0].Tasks
	if len(tasks) != 1 || tasks[0].Title != "Design initial UI mockups" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if tasks[0].DueDate != "2024-07-26" || tasks[0].Urgency != "Normal" || len(tasks[0].Checklist) != 3 {
		t.Fatalf("unexpected task fields: %+v", tasks[0])
	}
	if len(decoded.Columns[1].Tasks) != 0 || len(decoded.Columns[2].Tasks) != 0 {
		t.Fatalf("expected other columns empty")
	}
}

func TestTruncateTitle_KeepsRunesWhole(t *testing.T) {
	title := strings.Repeat("é", 30) + " 日本語のタイトル"

	got := truncateTitle(title, 35)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8, got %q", got)
	}
	if w := ansi.StringWidth(got); w > 35 {
		t.Fatalf("expected at most 35 cells, got %d", w)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}

	if got := truncateTitle("Short title", 35); got != "Short title" {
		t.Fatalf("expected short title unchanged, got %q", got)
	}
}

func TestMove(t *testing.T) {
	out := mustExecute(t, "move", "4", "done", "--as", "u1")
	if !strings.Contains(out, "Moved task #4 to Done") {
		t.Fatalf("unexpected output: %s", out)
	}

	if _, err := execute(t, "move", "99", "done", "--as", "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := execute(t, "move", "4", "done", "--as", "guest"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected forbidden for guest, got %v", err)
	}
	if _, err := execute(t, "move", "4", "done", "--as", "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected unknown identity to be rejected, got %v", err)
	}
	if _, err := execute(t, "move", "abc", "done", "--as", "u1"); err == nil {
		t.Fatalf("expected error for bad id")
	}
}

func TestCalendar(t *testing.T) {
	out := mustExecute(t, "calendar", "2024-07", "--as", "u1")

	for _, want := range []string{"July 2024", "Mo", "Jul 26  #1 Design initial UI mockups", "Jul 17  #2 Set up project repository"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out = mustExecute(t, "calendar", "2024-09", "--as", "u1")
	if !strings.Contains(out, "No tasks due this month.") {
		t.Fatalf("expected empty month:\n%s", out)
	}

	if _, err := execute(t, "calendar", "July", "--as", "u1"); err == nil {
		t.Fatalf("expected error for bad month")
	}
}

func TestTimesheet(t *testing.T) {
	out := mustExecute(t, "timesheet", "--as", "u1")

	for _, want := range []string{"Timesheet for Alice Chen since 13/07/2024", "Set up project repository", "Great ownership", "Thanks for unblocking", "The API draft"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Mockup review notes") {
		t.Fatalf("expected old feedback outside the window to be excluded:\n%s", out)
	}

	out = mustExecute(t, "timesheet", "--as", "guest")
	if !strings.Contains(out, "only available to signed-in team members") {
		t.Fatalf("unexpected guest output: %s", out)
	}
}

func TestFeedback(t *testing.T) {
	out := mustExecute(t, "feedback", "--as", "u1", "--to", "u1", "--from", "")
	if strings.Count(out, "Alice Chen") != 2 || !strings.Contains(out, "Mentor") {
		t.Fatalf("expected two entries for Alice:\n%s", out)
	}

	out = mustExecute(t, "feedback", "give", "u2", "Great", "demo", "--as", "u1")
	if !strings.Contains(out, "Feedback #5 sent to u2") {
		t.Fatalf("unexpected output: %s", out)
	}

	if _, err := execute(t, "feedback", "give", "u2", "Hi", "--as", "guest"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected forbidden for guest, got %v", err)
	}
	if _, err := execute(t, "feedback", "edit", "1", "Rewritten", "--as", "u1"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected forbidden editing Mentor feedback, got %v", err)
	}
}

func TestAdd_QuickSyntax(t *testing.T) {
	out := mustExecute(t, "add", "Prepare demo @bruno +high due:3days", "--as", "u1",
		"--assignee", "", "--priority", "", "--status", "", "--due", "", "--interactive=false")

	for _, want := range []string{"Created task #7: Prepare demo", "Assignee: Bruno Silva", "Priority: High", "Status: To Do", "Bruno Silva has been notified"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAdd_FlagsAndValidation(t *testing.T) {
	out := mustExecute(t, "add", "Write changelog", "--as", "u1",
		"--assignee", "", "--priority", "low", "--status", "done", "--due", "tomorrow", "--interactive=false")
	if !strings.Contains(out, "Assignee: Alice Chen") || !strings.Contains(out, "Status: Done") || strings.Contains(out, "notified") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	_, err := execute(t, "add", "No due date", "--as", "u1",
		"--assignee", "", "--priority", "", "--status", "", "--due", "", "--interactive=false")
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = execute(t, "add", "Guest task due:today", "--as", "guest",
		"--assignee", "u2", "--priority", "", "--status", "", "--due", "", "--interactive=false")
	if !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected forbidden for guest, got %v", err)
	}
}

func TestMembersAndNotifications(t *testing.T) {
	out := mustExecute(t, "members", "--as", "u2")
	if !strings.Contains(out, "* u2     Bruno Silva") || !strings.Contains(out, "Signed in as: u2") {
		t.Fatalf("unexpected members output:\n%s", out)
	}

	out = mustExecute(t, "notifications", "--as", "u1", "--mine=false", "--clear=false")
	if !strings.Contains(out, "No notifications.") {
		t.Fatalf("expected empty notifications in a fresh session:\n%s", out)
	}
}

func TestVersionAndHelp(t *testing.T) {
	SetVersion("1.2.3", "abc", "today")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	out := mustExecute(t, "version")
	if !strings.Contains(out, "teamboard 1.2.3 (commit abc") {
		t.Fatalf("unexpected version output: %s", out)
	}

	out = mustExecute(t, "help")
	if !strings.Contains(out, "feedback give") || !strings.Contains(out, "--as <identity>") {
		t.Fatalf("unexpected help output")
	}
}
