package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/notify"
)

// TaskInput holds every non-id field of a task, for create and full-replace update
type TaskInput struct {
	Title        string
	Status       models.Status   // empty means To Do
	AssigneeID   string
	DueDate      models.Date
	Priority     models.Priority // empty means Medium
	VoiceNoteRef string
	Checklist    []models.ChecklistItem
	Attachments  []models.Attachment
}

// InputFromTask copies a task's fields into a TaskInput for editing
func InputFromTask(t models.Task) TaskInput {
	return TaskInput{
		Title:        t.Title,
		Status:       t.Status,
		AssigneeID:   t.AssigneeID,
		DueDate:      t.DueDate,
		Priority:     t.Priority,
		VoiceNoteRef: t.VoiceNoteRef,
		Checklist:    append([]models.ChecklistItem(nil), t.Checklist...),
		Attachments:  append([]models.Attachment(nil), t.Attachments...),
	}
}

// CreateTask validates input, stores a new task with a fresh id and raises an
// assignment notification when the assignee is not the current identity
func (s *Store) CreateTask(in TaskInput) (*models.Task, error) {
	if err := s.requireMember("create tasks"); err != nil {
		return nil, s.reject("create_task", err)
	}
	task, err := s.buildTask(in)
	if err != nil {
		return nil, s.reject("create_task", err)
	}

	var event *notify.Event
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if ev, ok := notify.TaskAssigned(task, s.identity); ok {
			event = &ev
			return enqueue(tx, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"task_id":  task.ID,
		"assignee": task.AssigneeID,
		"due":      task.DueDate.String(),
		"notified": event != nil,
	}).Info("task created")

	return s.Task(task.ID)
}

// UpdateTask replaces every non-id field of task id in one step
func (s *Store) UpdateTask(id uint, in TaskInput) (*models.Task, error) {
	if err := s.requireMember("edit tasks"); err != nil {
		return nil, s.reject("update_task", err)
	}
	if err := s.db.First(&models.Task{}, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.reject("update_task", notFoundf("task #%d not found", id))
		}
		return nil, fmt.Errorf("failed to load task #%d: %w", id, err)
	}
	task, err := s.buildTask(in)
	if err != nil {
		return nil, s.reject("update_task", err)
	}
	task.ID = id
	for i := range task.Checklist {
		task.Checklist[i].TaskID = id
	}
	for i := range task.Attachments {
		task.Attachments[i].TaskID = id
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&task).Error; err != nil {
			return err
		}
		return replaceChildren(tx, task)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"task_id": id,
		"status":  task.Status,
	}).Info("task updated")

	return s.Task(id)
}

// SetTaskStatus moves a task to any column. Every transition is allowed,
// including to the status it already has.
func (s *Store) SetTaskStatus(id uint, status models.Status) (*models.Task, error) {
	if err := s.requireMember("move tasks"); err != nil {
		return nil, s.reject("set_task_status", err)
	}
	if !status.Valid() {
		return nil, s.reject("set_task_status", validationf("invalid status %q", status))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Task{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("task #%d not found", id)
			}
			return err
		}
		return tx.Model(&models.Task{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, s.reject("set_task_status", err)
		}
		return nil, fmt.Errorf("failed to change task status: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"task_id": id,
		"status":  status,
	}).Info("task status changed")

	return s.Task(id)
}

// Tasks returns every task in creation order
func (s *Store) Tasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := s.withChildren(s.db).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	for i := range tasks {
		normalize(&tasks[i])
	}
	return tasks, nil
}

// Task retrieves a task by ID
func (s *Store) Task(id uint) (*models.Task, error) {
	var task models.Task
	err := s.withChildren(s.db).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("task #%d not found", id)
		}
		return nil, fmt.Errorf("failed to load task #%d: %w", id, err)
	}
	normalize(&task)
	return &task, nil
}

func (s *Store) withChildren(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }
	return db.Preload("Checklist", byPosition).Preload("Attachments", byPosition)
}

// buildTask validates input and turns it into a storable task
func (s *Store) buildTask(in TaskInput) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, validationf("task title is required")
	}
	if in.DueDate.IsZero() {
		return models.Task{}, validationf("due date is required")
	}

	status := in.Status
	if status == "" {
		status = models.StatusToDo
	}
	if !status.Valid() {
		return models.Task{}, validationf("invalid status %q", status)
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, validationf("invalid priority %q", priority)
	}

	assignee := strings.TrimSpace(in.AssigneeID)
	if assignee == "" {
		return models.Task{}, validationf("assignee is required")
	}
	if _, err := s.Member(assignee); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Task{}, validationf("assignee %q is not a team member", assignee)
		}
		return models.Task{}, err
	}

	task := models.Task{
		Title:        title,
		Status:       status,
		AssigneeID:   assignee,
		DueDate:      in.DueDate,
		Priority:     priority,
		VoiceNoteRef: in.VoiceNoteRef,
		Checklist:    append([]models.ChecklistItem{}, in.Checklist...),
		Attachments:  append([]models.Attachment{}, in.Attachments...),
	}
	if err := prepareChildren(&task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// prepareChildren validates checklist items and attachments, assigning ids
// and insertion positions
func prepareChildren(task *models.Task) error {
	seen := make(map[string]bool)
	claim := func(id *string) error {
		if *id == "" {
			*id = uuid.NewString()
		}
		if seen[*id] {
			return validationf("duplicate id %q", *id)
		}
		seen[*id] = true
		return nil
	}

	for i := range task.Checklist {
		item := &task.Checklist[i]
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			return validationf("checklist item %d has no text", i+1)
		}
		if err := claim(&item.ID); err != nil {
			return err
		}
		item.Position = i
	}
	for i := range task.Attachments {
		att := &task.Attachments[i]
		if strings.TrimSpace(att.Name) == "" {
			return validationf("attachment %d has no name", i+1)
		}
		if att.ContentRef == "" {
			return validationf("attachment %q has no content", att.Name)
		}
		if err := claim(&att.ID); err != nil {
			return err
		}
		att.Position = i
	}
	return nil
}

// replaceChildren swaps the stored checklist and attachments for task's
func replaceChildren(tx *gorm.DB, task models.Task) error {
	if err := tx.Where("task_id = ?", task.ID).Delete(&models.ChecklistItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id = ?", task.ID).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	if len(task.Checklist) > 0 {
		if err := tx.Create(&task.Checklist).Error; err != nil {
			return err
		}
	}
	if len(task.Attachments) > 0 {
		if err := tx.Create(&task.Attachments).Error; err != nil {
			return err
		}
	}
	return nil
}

// normalize gives empty relationships a non-nil slice
func normalize(task *models.Task) {
	if task.Checklist == nil {
		task.Checklist = []models.ChecklistItem{}
	}
	if task.Attachments == nil {
		task.Attachments = []models.Attachment{}
	}
}
