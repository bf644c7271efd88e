package models

import (
	"fmt"
	"strings"
)

// Status is a task's position in the three-stage workflow
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists the workflow columns in board order
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three workflow states
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the following column, or s itself for Done
func (s Status) Next() Status {
	switch s {
	case StatusToDo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	}
	return s
}

// Prev returns the preceding column, or s itself for To Do
func (s Status) Prev() Status {
	switch s {
	case StatusDone:
		return StatusInProgress
	case StatusInProgress:
		return StatusToDo
	}
	return s
}

// ParseStatus accepts the display names plus a few shorthand spellings
func ParseStatus(input string) (Status, error) {
	switch strings.ToLower(strings.Join(strings.Fields(input), " ")) {
	case "to do", "todo", "to-do":
		return StatusToDo, nil
	case "in progress", "inprogress", "in-progress", "doing", "wip":
		return StatusInProgress, nil
	case "done", "complete", "completed":
		return StatusDone, nil
	}
	return "", fmt.Errorf("invalid status %q. Use: todo, in progress, done", input)
}

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the three priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority converts "low/medium/high" or "1/2/3" into a Priority
func ParsePriority(input string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "med", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority %q. Use: low, medium, high, 1, 2, or 3", input)
}

// Task represents a card on the board
type Task struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	Status       Status   `gorm:"not null;index" json:"status"`
	AssigneeID   string   `gorm:"not null;index" json:"assignee_id"`
	DueDate      Date     `gorm:"not null;index" json:"due_date"`
	Priority     Priority `gorm:"not null" json:"priority"`
	VoiceNoteRef string   `json:"voice_note_ref,omitempty"` // empty means no voice note

	// Relationships, ordered by Position
	Checklist   []ChecklistItem `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE;" json:"checklist"`
	Attachments []Attachment    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE;" json:"attachments"`
}

// ChecklistItem is a sub-step owned by a Task
type ChecklistItem struct {
	ID        string `gorm:"primaryKey" json:"id"`
	TaskID    uint   `gorm:"not null;index" json:"-"`
	Position  int    `gorm:"not null" json:"-"`
	Text      string `gorm:"not null" json:"text"`
	Completed bool   `json:"completed"`
}

// Attachment is an externally captured file stored by reference
type Attachment struct {
	ID         string `gorm:"primaryKey" json:"id"`
	TaskID     uint   `gorm:"not null;index" json:"-"`
	Position   int    `gorm:"not null" json:"-"`
	Name       string `gorm:"not null" json:"name"`
	ContentRef string `gorm:"not null" json:"content_ref"`
	MimeType   string `json:"mime_type"`
}

// ChecklistProgress returns completed and total item counts
func (t Task) ChecklistProgress() (done, total int) {
	for _, item := range t.Checklist {
		if item.Completed {
			done++
		}
	}
	return done, len(t.Checklist)
}
