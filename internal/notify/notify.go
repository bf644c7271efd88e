// Package notify decides which mutations produce notifications and when the
// notification list should be marked read.
package notify

import (
	"fmt"

	"github.com/balkashynov/teamboard/internal/models"
)

// Event is a notification waiting to be stored
type Event struct {
	RecipientID string
	Message     string
}

// TaskAssigned returns the "assigned to you" event for a newly created task.
// No event is produced when the active identity assigned the task to itself.
func TaskAssigned(task models.Task, active models.Identity) (Event, bool) {
	if task.AssigneeID == active.ID() {
		return Event{}, false
	}
	return Event{
		RecipientID: task.AssigneeID,
		Message:     fmt.Sprintf("New task \"%s\" assigned to you.", task.Title),
	}, true
}

// FeedbackReceived returns the event for newly submitted feedback. It fires
// only when the feedback's target is the identity active at submit time.
func FeedbackReceived(fb models.Feedback, fromName string, active models.Identity) (Event, bool) {
	if !active.IsMember() || fb.ToID != active.ID() {
		return Event{}, false
	}
	if fromName == "" {
		fromName = fb.FromID
	}
	return Event{
		RecipientID: fb.ToID,
		Message:     fmt.Sprintf("%s left feedback for you.", fromName),
	}, true
}

// Surface tracks whether the notification panel is open
type Surface struct {
	open bool
}

// Open reports whether the panel is currently shown
func (s *Surface) Open() bool {
	return s.open
}

// Toggle flips the panel and reports whether the list must be marked read,
// which happens only on a closed to open transition with unread items.
func (s *Surface) Toggle(unread int) (clear bool) {
	s.open = !s.open
	return s.open && unread > 0
}

// Close hides the panel
func (s *Surface) Close() {
	s.open = false
}
