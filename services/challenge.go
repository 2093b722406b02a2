package services

import (
	"log"

	"ecoscan-backend/models"

	"github.com/google/uuid"
)

// ChallengeService manages the shared daily pool. Completion is globally
// exclusive (first claim wins) but the completed flag is shown only to the
// user who completed the row — everyone else still sees it as available.
// That asymmetry is deliberate and matched to the product's behavior.
type ChallengeService struct {
	Store  ChallengeStore
	Scores ScoreStore
}

func NewChallengeService(store ChallengeStore, scores ScoreStore) *ChallengeService {
	return &ChallengeService{Store: store, Scores: scores}
}

// EnsureSeeded materializes the fixed pool for the date if it does not exist
// yet. Safe to call repeatedly; duplicate (date, code) rows cannot appear.
func (s *ChallengeService) EnsureSeeded(date string) error {
	existing, err := s.Store.ForDate(date)
	if err != nil {
		return err
	}
	if len(existing) >= len(models.ChallengeTemplates) {
		return nil
	}
	rows := make([]models.Challenge, 0, len(models.ChallengeTemplates))
	for _, tpl := range models.ChallengeTemplates {
		rows = append(rows, models.Challenge{
			ID:          uuid.NewString(),
			Code:        tpl.Code,
			Description: tpl.Description,
			Points:      tpl.Points,
			Date:        date,
		})
	}
	if err := s.Store.Seed(rows); err != nil {
		return err
	}
	log.Printf("seeded %d challenges for %s", len(rows), date)
	return nil
}

// ChallengesFor returns the date's pool projected for the requesting user.
func (s *ChallengeService) ChallengesFor(date, requestingUser string) ([]models.ChallengeView, error) {
	if err := s.EnsureSeeded(date); err != nil {
		return nil, err
	}
	rows, err := s.Store.ForDate(date)
	if err != nil {
		return nil, err
	}
	views := make([]models.ChallengeView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.ChallengeView{
			ID:          row.ID,
			Description: row.Description,
			Points:      row.Points,
			Completed:   row.Completed && row.Username == requestingUser,
			Username:    row.Username,
		})
	}
	return views, nil
}

// Complete claims the challenge for username and awards its points. The claim
// is committed before any points move, so a losing racer never awards
// anything. Returns the points awarded.
func (s *ChallengeService) Complete(challengeID, username string) (int, error) {
	row, err := s.Store.Claim(challengeID, username)
	if err != nil {
		return 0, err
	}
	if _, err := s.Scores.AddPoints(username, row.Points); err != nil {
		return 0, err
	}
	return row.Points, nil
}

// Prune drops pool rows older than the cutoff date.
func (s *ChallengeService) Prune(cutoff string) (int64, error) {
	return s.Store.DeleteBefore(cutoff)
}
