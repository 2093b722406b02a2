package services

import (
	"errors"

	"ecoscan-backend/models"
)

// ErrChallengeUnavailable is returned when a challenge id does not exist or
// the row was already claimed by someone.
var ErrChallengeUnavailable = errors.New("challenge not found or already completed")

// The bookkeeping core runs against these contracts. Two adapters implement
// them: GormStore (networked, Postgres) and MemStore (local cache, also the
// deterministic test double).

// ScoreStore is the authoritative points ledger, keyed by username.
type ScoreStore interface {
	// GetPoints returns 0 for users that have never been saved.
	GetPoints(username string) (int, error)
	// AddPoints performs an atomic upsert-with-increment and returns the new
	// total. Delta is always a positive award amount.
	AddPoints(username string, delta int) (int, error)
	// SetPoints overwrites the stored total (client-local sync path).
	SetPoints(username string, points int) error
	// Entries returns every user ordered by points descending.
	Entries() ([]models.LeaderboardEntry, error)
}

// ClassificationStore is the append-only event history.
type ClassificationStore interface {
	Append(ev *models.Classification) error
	// HistoryFor returns events newest first.
	HistoryFor(username string) ([]models.Classification, error)
}

// ChallengeStore holds the shared daily pool.
type ChallengeStore interface {
	ForDate(date string) ([]models.Challenge, error)
	// Seed inserts the rows, skipping any (date, code) pair that already
	// exists, so racing seeders cannot duplicate the pool.
	Seed(rows []models.Challenge) error
	// Claim marks the row completed for username and returns it. It is a
	// single conditional update: at most one caller ever wins a given row.
	// Returns ErrChallengeUnavailable when the id is unknown or already
	// completed by anyone.
	Claim(id, username string) (*models.Challenge, error)
	// DeleteBefore drops pool rows older than the cutoff date.
	DeleteBefore(date string) (int64, error)
}

// DailyProgressStore persists the per-user streak state.
type DailyProgressStore interface {
	// Progress returns a zero-value state when none is stored yet.
	Progress(username string) (models.DailyProgress, error)
	SaveProgress(p *models.DailyProgress) error
	// AdvanceProgress applies one qualifying action as a single indivisible
	// step: reset when the stored date is stale, increment the count and
	// latch the bonus flag once the count reaches the goal. The flag is true
	// only for the one call that flipped the latch; racing callers never
	// both see it.
	AdvanceProgress(username, today string) (models.DailyProgress, bool, error)
	// ResetStaleProgress zeroes rows whose stored date is not today. Advance
	// resets lazily anyway; the sweep just keeps profile reads honest.
	ResetStaleProgress(today string) (int64, error)
}

// AchievementStore holds each user's unlocked set. Append-only.
type AchievementStore interface {
	UnlockedFor(username string) ([]string, error)
	// Unlock reports whether this call inserted the row. Racing evaluators
	// both land here; only the insert winner gets true.
	Unlock(username, name string) (bool, error)
}

// FeedbackStore is append-only.
type FeedbackStore interface {
	AppendFeedback(f *models.Feedback) error
}

// Store bundles the full contract; both adapters satisfy it.
type Store interface {
	ScoreStore
	ClassificationStore
	ChallengeStore
	DailyProgressStore
	AchievementStore
	FeedbackStore
}
