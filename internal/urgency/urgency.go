// Package urgency classifies due dates relative to a caller-supplied day.
package urgency

import (
	"time"

	"github.com/balkashynov/teamboard/internal/models"
)

// Tier is how pressing a due date is
type Tier int

const (
	Normal Tier = iota
	DueSoon
	Overdue
)

// DueSoonDays is the inclusive window, in days from today, that counts as due soon
const DueSoonDays = 3

func (t Tier) String() string {
	switch t {
	case Overdue:
		return "Overdue"
	case DueSoon:
		return "Due Soon"
	default:
		return "Normal"
	}
}

// Classify maps a due date to its tier as seen from today
func Classify(due, today models.Date) Tier {
	diff := due.DaysSince(today)
	switch {
	case diff < 0:
		return Overdue
	case diff <= DueSoonDays:
		return DueSoon
	default:
		return Normal
	}
}

// ClassifyAt classifies against the calendar date of now
func ClassifyAt(due models.Date, now time.Time) Tier {
	return Classify(due, models.DateOf(now))
}
