// Package views derives read-only projections (board, calendar, timesheet)
// from a snapshot of the entity store.
package views

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/urgency"
)

// All is the wildcard value for assignee and status filters
const All = "all"

// Filter narrows the board. Empty AssigneeID or Status behave like All.
type Filter struct {
	AssigneeID string
	Status     string
	Title      string
}

// Card is a task placed on the board with its urgency tier
type Card struct {
	Task    models.Task
	Urgency urgency.Tier
}

// Column holds the cards of one workflow status
type Column struct {
	Status models.Status
	Cards  []Card
}

// Board is the three-column partition of the filtered tasks
type Board struct {
	Columns []Column
}

// BuildBoard partitions tasks into workflow columns, keeping store order
func BuildBoard(tasks []models.Task, f Filter, today models.Date) Board {
	folder := cases.Fold()
	needle := folder.String(f.Title)

	board := Board{Columns: make([]Column, len(models.Statuses))}
	index := make(map[models.Status]int, len(models.Statuses))
	for i, s := range models.Statuses {
		board.Columns[i] = Column{Status: s, Cards: []Card{}}
		index[s] = i
	}

	for _, t := range tasks {
		if !wildcard(f.AssigneeID) && t.AssigneeID != f.AssigneeID {
			continue
		}
		if !wildcard(f.Status) && string(t.Status) != f.Status {
			continue
		}
		if needle != "" && !strings.Contains(folder.String(t.Title), needle) {
			continue
		}
		i, ok := index[t.Status]
		if !ok {
			continue
		}
		board.Columns[i].Cards = append(board.Columns[i].Cards, Card{
			Task:    t,
			Urgency: urgency.Classify(t.DueDate, today),
		})
	}
	return board
}

func wildcard(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

// Column returns the column for s
func (b Board) Column(s models.Status) Column {
	for _, c := range b.Columns {
		if c.Status == s {
			return c
		}
	}
	return Column{Status: s}
}

// Total counts cards across all columns
func (b Board) Total() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Cards)
	}
	return n
}

// Counts returns the card count per column in board order
func (b Board) Counts() []int {
	counts := make([]int, len(b.Columns))
	for i, c := range b.Columns {
		counts[i] = len(c.Cards)
	}
	return counts
}
