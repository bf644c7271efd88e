package store

import (
	"github.com/balkashynov/teamboard/internal/models"
)

// Checklist, attachment and voice-note changes are full task updates, so
// they share UpdateTask's validation and all-or-nothing write.

// AddChecklistItem appends an unchecked item to the task's checklist
func (s *Store) AddChecklistItem(taskID uint, text string) (*models.Task, error) {
	return s.editTask(taskID, func(in *TaskInput) error {
		in.Checklist = append(in.Checklist, models.ChecklistItem{Text: text})
		return nil
	})
}

// ToggleChecklistItem flips the completed flag of one item
func (s *Store) ToggleChecklistItem(taskID uint, itemID string) (*models.Task, error) {
	return s.editTask(taskID, func(in *TaskInput) error {
		for i := range in.Checklist {
			if in.Checklist[i].ID == itemID {
				in.Checklist[i].Completed = !in.Checklist[i].Completed
				return nil
			}
		}
		return notFoundf("checklist item %q not found on task #%d", itemID, taskID)
	})
}

// RemoveChecklistItem drops one item, keeping the order of the rest
func (s *Store) RemoveChecklistItem(taskID uint, itemID string) (*models.Task, error) {
	return s.editTask(taskID, func(in *TaskInput) error {
		for i := range in.Checklist {
			if in.Checklist[i].ID == itemID {
				in.Checklist = append(in.Checklist[:i], in.Checklist[i+1:]...)
				return nil
			}
		}
		return notFoundf("checklist item %q not found on task #%d", itemID, taskID)
	})
}

// AddAttachment stores a captured file reference on the task as-is
func (s *Store) AddAttachment(taskID uint, att models.Attachment) (*models.Task, error) {
	att.ID = ""
	return s.editTask(taskID, func(in *TaskInput) error {
		in.Attachments = append(in.Attachments, att)
		return nil
	})
}

// SetVoiceNote records a voice-note reference; an empty ref clears it
func (s *Store) SetVoiceNote(taskID uint, ref string) (*models.Task, error) {
	return s.editTask(taskID, func(in *TaskInput) error {
		in.VoiceNoteRef = ref
		return nil
	})
}

func (s *Store) editTask(taskID uint, change func(*TaskInput) error) (*models.Task, error) {
	if err := s.requireMember("edit tasks"); err != nil {
		return nil, s.reject("update_task", err)
	}
	task, err := s.Task(taskID)
	if err != nil {
		return nil, s.reject("update_task", err)
	}
	in := InputFromTask(*task)
	if err := change(&in); err != nil {
		return nil, s.reject("update_task", err)
	}
	return s.UpdateTask(taskID, in)
}
