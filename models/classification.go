package models

import "time"

// Action says what the user should do with the item.
type Action string

const (
	ActionRecycle Action = "Recycle"
	ActionCompost Action = "Compost"
)

// Classification is one recorded waste-sorting event. Immutable once created.
type Classification struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"index:idx_classifications_user_time,priority:1;not null" json:"username"`
	Type      string    `gorm:"not null" json:"type"`
	Action    Action    `gorm:"not null" json:"action"`
	Disposal  string    `gorm:"not null" json:"disposal"`
	Points    int       `gorm:"not null" json:"points"`
	Timestamp time.Time `gorm:"index:idx_classifications_user_time,priority:2;not null" json:"timestamp"`
}

// ClassificationResult is the tuple the classification oracle hands back.
type ClassificationResult struct {
	Type     string `json:"type"`
	Action   Action `json:"action"`
	Disposal string `json:"disposal"`
	Points   int    `json:"points"`
}

// ClassificationOutcomes is the fixed set the random oracle draws from.
var ClassificationOutcomes = []ClassificationResult{
	{Type: "Plastic", Action: ActionRecycle, Disposal: "blue recycling bin", Points: 10},
	{Type: "Paper", Action: ActionRecycle, Disposal: "paper recycling bin", Points: 8},
	{Type: "Organic", Action: ActionCompost, Disposal: "green compost bin", Points: 12},
	{Type: "Glass", Action: ActionRecycle, Disposal: "glass recycling bin", Points: 10},
	{Type: "Metal", Action: ActionRecycle, Disposal: "metal recycling bin", Points: 10},
}
