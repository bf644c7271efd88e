// Package seed holds the starter data every session begins with. Dates are
// relative to the clock at startup so the overdue and due-soon examples stay
// overdue and due soon.
package seed

import (
	"time"

	"github.com/balkashynov/teamboard/internal/models"
)

// Data is a full fixture ready for store.Load
type Data struct {
	Members  []models.TeamMember
	Tasks    []models.Task
	Feedback []models.Feedback
}

// Fixture builds the starter set relative to now
func Fixture(now time.Time) Data {
	today := models.DateOf(now)

	return Data{
		Members: []models.TeamMember{
			{ID: "u1", Name: "Alice Chen", AvatarRef: "avatars/alice.png"},
			{ID: "u2", Name: "Bruno Silva", AvatarRef: "avatars/bruno.png"},
			{ID: "u3", Name: "Chidi Okafor", AvatarRef: "avatars/chidi.png"},
			{ID: "u4", Name: "Dana Kowalski", AvatarRef: "avatars/dana.png"},
		},
		Tasks: []models.Task{
			{
				Title:      "Design initial UI mockups",
				Status:     models.StatusToDo,
				AssigneeID: "u2",
				DueDate:    today.AddDays(6),
				Priority:   models.PriorityHigh,
				Checklist: []models.ChecklistItem{
					{Text: "Sketch wireframes", Completed: true},
					{Text: "Pick a color palette"},
					{Text: "Review with the team"},
				},
				Attachments: []models.Attachment{
					{Name: "moodboard.png", ContentRef: "data:image/png;base64,iVBORw0KGgo=", MimeType: "image/png"},
				},
			},
			{
				Title:      "Set up project repository",
				Status:     models.StatusDone,
				AssigneeID: "u1",
				DueDate:    today.AddDays(-3),
				Priority:   models.PriorityMedium,
			},
			{
				Title:      "Write API documentation",
				Status:     models.StatusInProgress,
				AssigneeID: "u3",
				DueDate:    today.AddDays(2),
				Priority:   models.PriorityMedium,
			},
			{
				Title:      "Fix login redirect bug",
				Status:     models.StatusInProgress,
				AssigneeID: "u1",
				DueDate:    today.AddDays(-1),
				Priority:   models.PriorityHigh,
			},
			{
				Title:      "Plan sprint retrospective",
				Status:     models.StatusToDo,
				AssigneeID: "u4",
				DueDate:    today.AddDays(10),
				Priority:   models.PriorityLow,
			},
			{
				Title:      "Deploy staging environment",
				Status:     models.StatusDone,
				AssigneeID: "u2",
				DueDate:    today.AddDays(-5),
				Priority:   models.PriorityHigh,
			},
		},
		Feedback: []models.Feedback{
			{FromID: models.MentorID, ToID: "u1", Text: "Great ownership of the repository setup.", Date: today.AddDays(-2)},
			{FromID: "u2", ToID: "u1", Text: "Thanks for unblocking the staging deploy.", Date: today.AddDays(-1)},
			{FromID: "u1", ToID: "u3", Text: "The API draft reads well, add auth examples.", Date: today.AddDays(-4)},
			{FromID: "u3", ToID: "u2", Text: "Mockup review notes are in the doc.", Date: today.AddDays(-12)},
		},
	}
}
