package models

// TeamMember is a seeded person tasks can be assigned to
type TeamMember struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	AvatarRef string `json:"avatar_ref"`
}

// Feedback is a note left by one identity for another
type Feedback struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	FromID string `gorm:"not null;index" json:"from_id"`
	ToID   string `gorm:"not null;index" json:"to_id"`
	Text   string `gorm:"not null" json:"text"`
	Date   Date   `gorm:"not null;index" json:"date"`
}

// MentorID is the only non-member identity allowed as a feedback sender
const MentorID = "Mentor"

// Notification is an activity message shown in the notification panel
type Notification struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	RecipientID string `gorm:"index" json:"recipient_id"`
	Message     string `gorm:"not null" json:"message"`
	Read        bool   `json:"read"`
}
