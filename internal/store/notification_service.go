package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/notify"
)

// enqueue stores an unread notification inside the caller's transaction
func enqueue(tx *gorm.DB, ev notify.Event) error {
	return tx.Create(&models.Notification{
		RecipientID: ev.RecipientID,
		Message:     ev.Message,
	}).Error
}

// Notifications returns every notification, oldest first. The list is not
// filtered by recipient: every identity sees every notification.
func (s *Store) Notifications() ([]models.Notification, error) {
	var list []models.Notification
	if err := s.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// NotificationsFor returns only the notifications addressed to recipientID
func (s *Store) NotificationsFor(recipientID string) ([]models.Notification, error) {
	var list []models.Notification
	if err := s.db.Where("recipient_id = ?", recipientID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// UnreadCount counts notifications not yet marked read
func (s *Store) UnreadCount() (int, error) {
	var n int64
	if err := s.db.Model(&models.Notification{}).Where("read = ?", false).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return int(n), nil
}

// ClearNotifications marks every notification read. Nothing is removed.
func (s *Store) ClearNotifications() error {
	res := s.db.Model(&models.Notification{}).Where("read = ?", false).Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to clear notifications: %w", res.Error)
	}
	s.log.WithField("marked", res.RowsAffected).Info("notifications cleared")
	return nil
}
