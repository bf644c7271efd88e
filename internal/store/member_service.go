package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/teamboard/internal/models"
)

// Members returns the team in seed order
func (s *Store) Members() ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.db.Order("rowid ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// Member retrieves a team member by id
func (s *Store) Member(id string) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("team member %q not found", id)
		}
		return nil, fmt.Errorf("failed to load member %q: %w", id, err)
	}
	return &m, nil
}

// FindMember looks a member up by id, full name or first name, ignoring case
// for names
func (s *Store) FindMember(token string) (*models.TeamMember, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "@"))
	if token == "" {
		return nil, validationf("member is required")
	}
	if m, err := s.Member(token); err == nil || !errors.Is(err, ErrNotFound) {
		return m, err
	}

	members, err := s.Members()
	if err != nil {
		return nil, err
	}
	for i := range members {
		name := members[i].Name
		first, _, _ := strings.Cut(name, " ")
		if strings.EqualFold(name, token) || strings.EqualFold(first, token) {
			return &members[i], nil
		}
	}
	return nil, notFoundf("team member %q not found", token)
}

// memberName resolves a display name, falling back to the raw id (e.g. "Mentor")
func memberName(tx *gorm.DB, id string) string {
	var m models.TeamMember
	if err := tx.First(&m, "id = ?", id).Error; err != nil {
		return id
	}
	return m.Name
}
