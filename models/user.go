package models

import "time"

// User is the authoritative points record, keyed by username.
// Created on first save, never deleted.
type User struct {
	Username  string    `gorm:"primaryKey" json:"username"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// LeaderboardEntry is a derived view over User totals.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}
