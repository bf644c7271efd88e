package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/notify"
)

// FeedbackInput is what a member submits. FromID defaults to the current identity.
type FeedbackInput struct {
	FromID string
	ToID   string
	Text   string
}

// SubmitFeedback stores feedback authored by the current member identity,
// dated with the store clock
func (s *Store) SubmitFeedback(in FeedbackInput) (*models.Feedback, error) {
	if err := s.requireMember("leave feedback"); err != nil {
		return nil, s.reject("submit_feedback", err)
	}
	from := strings.TrimSpace(in.FromID)
	if from == "" {
		from = s.identity.ID()
	}
	if from != s.identity.ID() {
		return nil, s.reject("submit_feedback", forbiddenf("cannot leave feedback as %q", from))
	}
	to := strings.TrimSpace(in.ToID)
	if to == "" {
		return nil, s.reject("submit_feedback", validationf("feedback recipient is required"))
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, s.reject("submit_feedback", validationf("feedback text is required"))
	}

	fb := models.Feedback{
		FromID: from,
		ToID:   to,
		Text:   text,
		Date:   models.DateOf(s.now()),
	}

	var notified bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fb).Error; err != nil {
			return err
		}
		if ev, ok := notify.FeedbackReceived(fb, memberName(tx, fb.FromID), s.identity); ok {
			notified = true
			return enqueue(tx, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"feedback_id": fb.ID,
		"from":        fb.FromID,
		"to":          fb.ToID,
		"notified":    notified,
	}).Info("feedback submitted")

	return &fb, nil
}

// EditFeedback replaces the text of feedback id. Only its author may do this;
// id, date and both parties stay as they were.
func (s *Store) EditFeedback(id uint, newText string) (*models.Feedback, error) {
	fb, err := s.FeedbackByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, s.reject("edit_feedback", err)
		}
		return nil, err
	}
	if err := s.requireMember("edit feedback"); err != nil {
		return nil, s.reject("edit_feedback", err)
	}
	if s.identity.ID() != fb.FromID {
		return nil, s.reject("edit_feedback", forbiddenf("only the author can edit feedback #%d", id))
	}
	text := strings.TrimSpace(newText)
	if text == "" {
		return nil, s.reject("edit_feedback", validationf("feedback text is required"))
	}

	if err := s.db.Model(&models.Feedback{}).Where("id = ?", id).Update("text", text).Error; err != nil {
		return nil, fmt.Errorf("failed to edit feedback: %w", err)
	}
	fb.Text = text

	s.log.WithField("feedback_id", id).Info("feedback edited")
	return fb, nil
}

// Feedback returns all feedback in submission order
func (s *Store) Feedback() ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := s.db.Order("id ASC").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

// FeedbackByID retrieves one feedback entry
func (s *Store) FeedbackByID(id uint) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.db.First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("feedback #%d not found", id)
		}
		return nil, fmt.Errorf("failed to load feedback #%d: %w", id, err)
	}
	return &fb, nil
}
