package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/urgency"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^\+?(\d+)\s*(d|day|days|w|week|weeks)$`)
)

// ParseDueDate parses various due date formats relative to now
// Supported formats:
// - today, tomorrow
// - yyyy-mm-dd (e.g., "2024-12-15")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - X days (e.g., "3 days", "3days", "+3d")
// - X weeks (e.g., "2 weeks", "2w")
// Empty input returns a zero date and no error.
func ParseDueDate(input string, now time.Time) (models.Date, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return models.Date{}, nil
	}

	today := models.DateOf(now)
	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if d, err := models.ParseDate(input); err == nil {
		return d, nil
	}
	if d, err := parseSlashDate(input); err == nil {
		return d, nil
	}
	if d, err := parseRelative(input, today); err == nil {
		return d, nil
	}

	return models.Date{}, fmt.Errorf("invalid date format. Use: today, tomorrow, yyyy-mm-dd, dd/mm/yyyy, X days, or X weeks")
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (models.Date, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return models.Date{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return models.Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	// Reject dates that roll over (31/02, 29/02 outside leap years)
	d := models.NewDate(year, time.Month(month), day)
	if d.Day != day || d.Month != time.Month(month) || d.Year != year {
		return models.Date{}, fmt.Errorf("invalid date")
	}
	return d, nil
}

// parseRelative parses "3 days", "2w", "+5d" and similar
func parseRelative(input string, today models.Date) (models.Date, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return models.Date{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "d", "day", "days":
		if amount > 365 { // Max 1 year in days
			return models.Date{}, fmt.Errorf("days must be between 0 and 365")
		}
		return today.AddDays(amount), nil
	default:
		if amount > 52 { // Max 1 year in weeks
			return models.Date{}, fmt.Errorf("weeks must be between 0 and 52")
		}
		return today.AddDays(amount * 7), nil
	}
}

// FormatDueDate formats a due date for display
func FormatDueDate(due models.Date, now time.Time) string {
	if due.IsZero() {
		return ""
	}

	today := models.DateOf(now)
	daysDiff := due.DaysSince(today)
	dateStr := due.In(time.UTC).Format("02/01/2006")
	relative := humanize.RelTime(due.In(time.UTC), today.In(time.UTC), "ago", "from now")

	switch urgency.Classify(due, today) {
	case urgency.Overdue:
		return fmt.Sprintf("⚠️ OVERDUE (%s, %s)", dateStr, relative)
	case urgency.DueSoon:
		switch daysDiff {
		case 0:
			return fmt.Sprintf("🔥 Due today (%s)", dateStr)
		case 1:
			return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
		}
		return fmt.Sprintf("📅 Due %s (%s)", dateStr, relative)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
