package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/teamboard/internal/models"
)

var (
	dueTokenRegex      = regexp.MustCompile(`due:([^\s]+)`)
	statusTokenRegex   = regexp.MustCompile(`status:([^\s]+)`)
	assigneeTokenRegex = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	priorityTokenRegex = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
)

// ParsedTask represents a task parsed from quick-add text
type ParsedTask struct {
	Title    string
	Assignee string // raw token; resolved against the team by the caller
	Priority models.Priority
	Status   models.Status
	DueDate  models.Date
	Errors   []string
}

// ParseTitle extracts metadata from a task title using quick-add syntax
// Syntax: "Task title @assignee +priority due:3days status:doing"
func ParseTitle(input string, now time.Time) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Due date goes first: "due:+5d" would otherwise look like a priority
	if m := dueTokenRegex.FindStringSubmatch(input); len(m) > 1 {
		dueDate, err := ParseDueDate(m[1], now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+m[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueTokenRegex.ReplaceAllString(input, "")
	}

	if m := statusTokenRegex.FindStringSubmatch(input); len(m) > 1 {
		status, err := models.ParseStatus(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid status '"+m[1]+"'. Use: todo, doing, done")
		} else {
			result.Status = status
		}
		input = statusTokenRegex.ReplaceAllString(input, "")
	}

	if m := assigneeTokenRegex.FindStringSubmatch(input); len(m) > 1 {
		result.Assignee = m[1]
		input = assigneeTokenRegex.ReplaceAllString(input, "")
	}

	if m := priorityTokenRegex.FindStringSubmatch(input); len(m) > 1 {
		priority, err := models.ParsePriority(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid priority '"+m[1]+"'. Use: low, medium, high, 1, 2, or 3")
		} else {
			result.Priority = priority
		}
		input = priorityTokenRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
