package services

import (
	"math/rand"
	"time"

	"ecoscan-backend/models"

	"github.com/google/uuid"
)

// Oracle supplies the classification tuple for an uploaded image. The image
// content is opaque to the bookkeeping core; swapping in a fixed-sequence
// stub makes the whole pipeline deterministic under test.
type Oracle interface {
	Classify(image []byte) models.ClassificationResult
}

// RandomOracle picks uniformly from the fixed outcome set.
type RandomOracle struct {
	rnd *rand.Rand
}

func NewRandomOracle() *RandomOracle {
	return &RandomOracle{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (o *RandomOracle) Classify(_ []byte) models.ClassificationResult {
	return models.ClassificationOutcomes[o.rnd.Intn(len(models.ClassificationOutcomes))]
}

// ClassifyOutcome is everything one classification produced.
type ClassifyOutcome struct {
	Result          models.ClassificationResult
	NewTotal        int
	DailyBonus      int
	NewAchievements []string
	Level           string
}

// ClassifyService records classification events and drives the ledger, the
// daily streak and the achievement evaluation.
type ClassifyService struct {
	Store        Store
	Oracle       Oracle
	Achievements *AchievementService
	Now          func() time.Time
}

func NewClassifyService(store Store, oracle Oracle, achievements *AchievementService) *ClassifyService {
	return &ClassifyService{
		Store:        store,
		Oracle:       oracle,
		Achievements: achievements,
		Now:          time.Now,
	}
}

// Record runs the full pipeline for one submission. The event row is made
// durable before any points are awarded, so a failed award leaves no
// half-applied state that a retry could double-count.
func (s *ClassifyService) Record(username string, image []byte) (*ClassifyOutcome, error) {
	result := s.Oracle.Classify(image)
	now := s.Now()

	ev := models.Classification{
		ID:        uuid.NewString(),
		Username:  username,
		Type:      result.Type,
		Action:    result.Action,
		Disposal:  result.Disposal,
		Points:    result.Points,
		Timestamp: now,
	}
	if err := s.Store.Append(&ev); err != nil {
		return nil, err
	}

	total, err := s.Store.AddPoints(username, result.Points)
	if err != nil {
		return nil, err
	}

	// The streak step is one atomic store operation; the latch flips for a
	// single submission per day, so the bonus is awarded exactly once even
	// when same-user submissions race.
	today := now.Format(DateLayout)
	_, latched, err := s.Store.AdvanceProgress(username, today)
	if err != nil {
		return nil, err
	}
	bonus := 0
	if latched {
		bonus = DailyBonusPoints
		if total, err = s.Store.AddPoints(username, bonus); err != nil {
			return nil, err
		}
	}

	history, err := s.Store.HistoryFor(username)
	if err != nil {
		return nil, err
	}
	newly, err := s.Achievements.Evaluate(username, history)
	if err != nil {
		return nil, err
	}

	return &ClassifyOutcome{
		Result:          result,
		NewTotal:        total,
		DailyBonus:      bonus,
		NewAchievements: newly,
		Level:           LevelFor(total),
	}, nil
}

// History returns the user's classification events, newest first.
func (s *ClassifyService) History(username string) ([]models.Classification, error) {
	return s.Store.HistoryFor(username)
}
