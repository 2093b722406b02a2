package services

import (
	"time"

	"ecoscan-backend/models"
)

const (
	// DailyGoal qualifying actions in one calendar day earn the bonus.
	DailyGoal        = 3
	DailyBonusPoints = 50

	// DateLayout keys everything scoped to a calendar day.
	DateLayout = "2006-01-02"
)

// Today returns the current date key.
func Today() string {
	return time.Now().Format(DateLayout)
}

// AdvanceDaily is the streak transition: reset when the stored date is stale,
// count the qualifying actions, then latch the bonus once count reaches the
// goal. The latch is one-way per day; re-crossing emits nothing further.
// Returns the new state and the bonus points earned by this advance (0 or 50).
func AdvanceDaily(state models.DailyProgress, today string, qualifying int) (models.DailyProgress, int) {
	if state.Date != today {
		state.Date = today
		state.Count = 0
		state.Completed = false
	}
	state.Count += qualifying
	if !state.Completed && state.Count >= DailyGoal {
		state.Completed = true
		return state, DailyBonusPoints
	}
	return state, 0
}
