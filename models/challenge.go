package models

import (
	"time"

	"github.com/gosimple/slug"
)

// Challenge is one row of the shared daily pool. Scoped to a single calendar
// day; once any user completes it, it stays completed for everyone.
type Challenge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string    `gorm:"uniqueIndex:idx_challenges_day_code,priority:2;not null" json:"code"`
	Description string    `gorm:"not null" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	Date        string    `gorm:"uniqueIndex:idx_challenges_day_code,priority:1;not null" json:"date"`
	Username    string    `json:"username"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ChallengeView is the per-caller projection: Completed is true only when the
// requesting user is the one who completed the row.
type ChallengeView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Completed   bool   `json:"completed"`
	Username    string `json:"username"`
}

// ChallengeTemplate seeds one pool row per day.
type ChallengeTemplate struct {
	Code        string
	Description string
	Points      int
}

// ChallengeTemplates is the fixed pool materialized for each new date.
var ChallengeTemplates = []ChallengeTemplate{
	{Description: "Classify 3 waste items today", Points: 20},
	{Description: "Recycle a plastic bottle", Points: 15},
	{Description: "Compost food scraps", Points: 15},
}

func init() {
	for i := range ChallengeTemplates {
		ChallengeTemplates[i].Code = slug.Make(ChallengeTemplates[i].Description)
	}
}

// DailyProgress is the per-user streak counter: count of qualifying actions
// for one calendar day plus the one-way bonus latch.
type DailyProgress struct {
	Username  string    `gorm:"primaryKey" json:"username"`
	Date      string    `gorm:"not null" json:"date"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
