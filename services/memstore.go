package services

import (
	"sort"
	"sync"

	"ecoscan-backend/models"
)

// MemStore is the local-cache adapter: the same contract as GormStore over
// plain in-memory state. It backs the offline client variant and keeps the
// core logic testable without a database. A single mutex stands in for the
// storage layer's atomicity guarantees.
type MemStore struct {
	mu           sync.Mutex
	points       map[string]int
	history      map[string][]models.Classification
	challenges   map[string]*models.Challenge
	order        []string
	progress     map[string]models.DailyProgress
	achievements map[string][]string
	feedback     []models.Feedback
}

func NewMemStore() *MemStore {
	return &MemStore{
		points:       make(map[string]int),
		history:      make(map[string][]models.Classification),
		challenges:   make(map[string]*models.Challenge),
		progress:     make(map[string]models.DailyProgress),
		achievements: make(map[string][]string),
	}
}

func (s *MemStore) GetPoints(username string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points[username], nil
}

func (s *MemStore) AddPoints(username string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[username] += delta
	return s.points[username], nil
}

func (s *MemStore) SetPoints(username string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[username] = points
	return nil
}

func (s *MemStore) Entries() ([]models.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]models.LeaderboardEntry, 0, len(s.points))
	for username, points := range s.points {
		entries = append(entries, models.LeaderboardEntry{Username: username, Points: points})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Username < entries[j].Username
	})
	return entries, nil
}

func (s *MemStore) Append(ev *models.Classification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[ev.Username] = append(s.history[ev.Username], *ev)
	return nil
}

func (s *MemStore) HistoryFor(username string) ([]models.Classification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.history[username]
	events := make([]models.Classification, len(stored))
	for i, ev := range stored {
		events[len(stored)-1-i] = ev
	}
	return events, nil
}

func (s *MemStore) ForDate(date string) ([]models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []models.Challenge
	for _, id := range s.order {
		if ch := s.challenges[id]; ch.Date == date {
			rows = append(rows, *ch)
		}
	}
	return rows, nil
}

func (s *MemStore) Seed(rows []models.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		row := rows[i]
		exists := false
		for _, id := range s.order {
			if existing := s.challenges[id]; existing.Date == row.Date && existing.Code == row.Code {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		s.challenges[row.ID] = &row
		s.order = append(s.order, row.ID)
	}
	return nil
}

func (s *MemStore) Claim(id, username string) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[id]
	if !ok || ch.Completed {
		return nil, ErrChallengeUnavailable
	}
	ch.Completed = true
	ch.Username = username
	claimed := *ch
	return &claimed, nil
}

func (s *MemStore) DeleteBefore(date string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []string
	var removed int64
	for _, id := range s.order {
		if s.challenges[id].Date < date {
			delete(s.challenges, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed, nil
}

func (s *MemStore) Progress(username string) (models.DailyProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.progress[username]; ok {
		return p, nil
	}
	return models.DailyProgress{Username: username}, nil
}

func (s *MemStore) SaveProgress(p *models.DailyProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[p.Username] = *p
	return nil
}

func (s *MemStore) AdvanceProgress(username, today string) (models.DailyProgress, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[username]
	if !ok {
		p = models.DailyProgress{Username: username}
	}
	// The whole transition runs under the lock, so the latch flips for
	// exactly one caller per day.
	next, bonus := AdvanceDaily(p, today, 1)
	s.progress[username] = next
	return next, bonus > 0, nil
}

func (s *MemStore) ResetStaleProgress(today string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reset int64
	for username, p := range s.progress {
		if p.Date != today {
			s.progress[username] = models.DailyProgress{Username: username, Date: today}
			reset++
		}
	}
	return reset, nil
}

func (s *MemStore) UnlockedFor(username string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.achievements[username]...), nil
}

func (s *MemStore) Unlock(username, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.achievements[username] {
		if existing == name {
			return false, nil
		}
	}
	s.achievements[username] = append(s.achievements[username], name)
	return true, nil
}

func (s *MemStore) AppendFeedback(f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, *f)
	return nil
}
