package services

import (
	"errors"
	"fmt"

	"ecoscan-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the networked adapter backed by Postgres.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetPoints(username string) (int, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load points for %s: %w", username, err)
	}
	return user.Points, nil
}

// AddPoints is a single upsert-with-increment statement, never a read-then-write
// pair, so two racing submissions for the same user cannot lose an update.
func (s *GormStore) AddPoints(username string, delta int) (int, error) {
	user := models.User{Username: username, Points: delta}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points": gorm.Expr("users.points + ?", delta),
		}),
	}).Create(&user).Error
	if err != nil {
		return 0, fmt.Errorf("failed to add points for %s: %w", username, err)
	}

	var fresh models.User
	if err := s.DB.Where("username = ?", username).First(&fresh).Error; err != nil {
		return 0, fmt.Errorf("failed to reload points for %s: %w", username, err)
	}
	return fresh.Points, nil
}

func (s *GormStore) SetPoints(username string, points int) error {
	user := models.User{Username: username, Points: points}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"points"}),
	}).Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to save points for %s: %w", username, err)
	}
	return nil
}

func (s *GormStore) Entries() ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.DB.Model(&models.User{}).
		Select("username, points").
		Order("points DESC, username ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}

func (s *GormStore) Append(ev *models.Classification) error {
	if err := s.DB.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to record classification: %w", err)
	}
	return nil
}

func (s *GormStore) HistoryFor(username string) ([]models.Classification, error) {
	var events []models.Classification
	err := s.DB.Where("username = ?", username).
		Order("timestamp DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", username, err)
	}
	return events, nil
}

func (s *GormStore) ForDate(date string) ([]models.Challenge, error) {
	var rows []models.Challenge
	err := s.DB.Where("date = ?", date).
		Order("created_at ASC, code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load challenges for %s: %w", date, err)
	}
	return rows, nil
}

func (s *GormStore) Seed(rows []models.Challenge) error {
	if len(rows) == 0 {
		return nil
	}
	// (date, code) is unique, so a racing seeder just no-ops.
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed challenges: %w", err)
	}
	return nil
}

// Claim is the one indivisible check-completed-and-set: the conditional UPDATE
// guarantees at most one winner per row.
func (s *GormStore) Claim(id, username string) (*models.Challenge, error) {
	res := s.DB.Model(&models.Challenge{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{"completed": true, "username": username})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to claim challenge %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrChallengeUnavailable
	}

	var row models.Challenge
	if err := s.DB.First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload challenge %s: %w", id, err)
	}
	return &row, nil
}

func (s *GormStore) DeleteBefore(date string) (int64, error) {
	res := s.DB.Where("date < ?", date).Delete(&models.Challenge{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune challenges: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) Progress(username string) (models.DailyProgress, error) {
	var p models.DailyProgress
	err := s.DB.Where("username = ?", username).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DailyProgress{Username: username}, nil
	}
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to load daily progress for %s: %w", username, err)
	}
	return p, nil
}

func (s *GormStore) SaveProgress(p *models.DailyProgress) error {
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "count", "completed"}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to save daily progress for %s: %w", p.Username, err)
	}
	return nil
}

// AdvanceProgress folds reset, increment and latch into one upsert, the same
// way AddPoints and Claim keep their read-modify-write inside the database.
// Count moves by exactly one per statement, so the latch flips precisely on
// the statement whose returned count equals the goal.
func (s *GormStore) AdvanceProgress(username, today string) (models.DailyProgress, bool, error) {
	p := models.DailyProgress{Username: username, Date: today, Count: 1, Completed: 1 >= DailyGoal}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr(
				"CASE WHEN daily_progresses.date = EXCLUDED.date THEN daily_progresses.count + 1 ELSE 1 END"),
			"completed": gorm.Expr(
				"CASE WHEN daily_progresses.date = EXCLUDED.date THEN daily_progresses.completed OR daily_progresses.count + 1 >= ? ELSE ? END",
				DailyGoal, 1 >= DailyGoal),
			"date": gorm.Expr("EXCLUDED.date"),
		}),
	}, clause.Returning{}).Create(&p).Error
	if err != nil {
		return models.DailyProgress{}, false, fmt.Errorf("failed to advance daily progress for %s: %w", username, err)
	}
	return p, p.Completed && p.Count == DailyGoal, nil
}

func (s *GormStore) ResetStaleProgress(today string) (int64, error) {
	res := s.DB.Model(&models.DailyProgress{}).
		Where("date <> ?", today).
		Updates(map[string]interface{}{"date": today, "count": 0, "completed": false})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to reset stale daily progress: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) UnlockedFor(username string) ([]string, error) {
	var names []string
	err := s.DB.Model(&models.UserAchievement{}).
		Where("username = ?", username).
		Order("awarded_at ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements for %s: %w", username, err)
	}
	return names, nil
}

func (s *GormStore) Unlock(username, name string) (bool, error) {
	row := models.UserAchievement{
		ID:       uuid.NewString(),
		Username: username,
		Name:     name,
	}
	// Unique (username, name) keeps the unlocked set append-only and
	// duplicate-free even under re-evaluation. RowsAffected tells racing
	// evaluators apart: the conflict loser inserts nothing.
	res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to unlock %q for %s: %w", name, username, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) AppendFeedback(f *models.Feedback) error {
	if err := s.DB.Create(f).Error; err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}
