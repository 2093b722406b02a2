package models

import "time"

// AnonymousUser labels feedback submitted without a username.
const AnonymousUser = "Anonymous"

// Feedback is free-form user feedback. Append-only.
type Feedback struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Username  string    `gorm:"not null;default:'Anonymous'" json:"username"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
