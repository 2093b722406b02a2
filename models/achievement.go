package models

import "time"

// AchievementRule unlocks an achievement once the count of history entries
// matching Action reaches Threshold.
type AchievementRule struct {
	Name      string
	Action    Action
	Threshold int
}

// UserAchievement is one unlocked achievement. The set per user only grows.
type UserAchievement struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex:idx_user_achievement,priority:1;not null" json:"username"`
	Name      string    `gorm:"uniqueIndex:idx_user_achievement,priority:2;not null" json:"name"`
	AwardedAt time.Time `json:"awarded_at" gorm:"autoCreateTime"`
}
