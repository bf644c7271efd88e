package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/balkashynov/teamboard/internal/models"
)

var now = time.Date(2024, time.July, 20, 16, 45, 0, 0, time.Local)

func TestParseDueDate_Formats(t *testing.T) {
	today := models.DateOf(now)
	cases := map[string]models.Date{
		"":           {},
		"today":      today,
		"Tomorrow":   today.AddDays(1),
		"2024-07-25": models.NewDate(2024, time.July, 25),
		"25/07/2024": models.NewDate(2024, time.July, 25),
		"3 days":     today.AddDays(3),
		"3days":      today.AddDays(3),
		"+5d":        today.AddDays(5),
		"1 day":      today.AddDays(1),
		"2 weeks":    today.AddDays(14),
		"2w":         today.AddDays(14),
	}
	for input, want := range cases {
		got, err := ParseDueDate(input, now)
		if err != nil {
			t.Fatalf("ParseDueDate(%q): unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseDueDate(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestParseDueDate_Rejects(t *testing.T) {
	for _, input := range []string{"31/02/2024", "29/02/2023", "12/13/2024", "someday", "400 days", "3 hours"} {
		if _, err := ParseDueDate(input, now); err == nil {
			t.Fatalf("ParseDueDate(%q): expected error", input)
		}
	}
}

func TestFormatDueDate(t *testing.T) {
	today := models.DateOf(now)
	cases := []struct {
		due      models.Date
		contains string
	}{
		{today.AddDays(-2), "OVERDUE (18/07/2024"},
		{today, "Due today (20/07/2024)"},
		{today.AddDays(1), "Due tomorrow (21/07/2024)"},
		{today.AddDays(3), "3 days from now"},
		{today.AddDays(20), "Due 09/08/2024"},
	}
	for _, tc := range cases {
		if got := FormatDueDate(tc.due, now); !strings.Contains(got, tc.contains) {
			t.Fatalf("FormatDueDate(%v): expected %q in %q", tc.due, tc.contains, got)
		}
	}
	if FormatDueDate(models.Date{}, now) != "" {
		t.Fatalf("expected empty string for zero date")
	}
}

func TestParseTitle_FullSyntax(t *testing.T) {
	parsed := ParseTitle("Prepare demo   script @u3 +high due:+2d status:doing", now)

	if len(parsed.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", parsed.Errors)
	}
	if parsed.Title != "Prepare demo script" {
		t.Fatalf("unexpected title %q", parsed.Title)
	}
	if parsed.Assignee != "u3" || parsed.Priority != models.PriorityHigh || parsed.Status != models.StatusInProgress {
		t.Fatalf("unexpected metadata: %+v", parsed)
	}
	if parsed.DueDate != models.DateOf(now).AddDays(2) {
		t.Fatalf("unexpected due date %v", parsed.DueDate)
	}
}

func TestParseTitle_PlainTitle(t *testing.T) {
	parsed := ParseTitle("Just a title", now)
	if parsed.Title != "Just a title" || parsed.Assignee != "" || !parsed.DueDate.IsZero() || parsed.Priority != "" {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
}

func TestParseTitle_CollectsErrors(t *testing.T) {
	parsed := ParseTitle("Broken +urgent due:someday status:blocked", now)
	if len(parsed.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", parsed.Errors)
	}
	if parsed.Title != "Broken" {
		t.Fatalf("expected tokens stripped from title, got %q", parsed.Title)
	}
}
