package views

import (
	"time"

	"github.com/balkashynov/teamboard/internal/models"
)

// TimesheetWindowDays is the trailing window length
const TimesheetWindowDays = 7

// Timesheet lists one identity's recent completed work and feedback
type Timesheet struct {
	Since    models.Date
	Tasks    []models.Task
	Feedback []models.Feedback
}

// BuildTimesheet keeps Done tasks assigned to identityID and feedback from or
// to identityID whose date is on or after now minus seven days. There is no
// upper bound, so future-dated entries are included.
func BuildTimesheet(tasks []models.Task, feedback []models.Feedback, identityID string, now time.Time) Timesheet {
	since := models.DateOf(now).AddDays(-TimesheetWindowDays)
	ts := Timesheet{Since: since, Tasks: []models.Task{}, Feedback: []models.Feedback{}}
	if identityID == "" {
		return ts
	}

	for _, t := range tasks {
		if t.Status == models.StatusDone && t.AssigneeID == identityID && !t.DueDate.Before(since) {
			ts.Tasks = append(ts.Tasks, t)
		}
	}
	for _, fb := range feedback {
		if (fb.FromID == identityID || fb.ToID == identityID) && !fb.Date.Before(since) {
			ts.Feedback = append(ts.Feedback, fb)
		}
	}
	return ts
}
