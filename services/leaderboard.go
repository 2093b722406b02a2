package services

import "ecoscan-backend/models"

// DefaultLeaderboardSize is the public top-N view.
const DefaultLeaderboardSize = 5

// LeaderboardService is a derived view over the score ledger; every read goes
// back to the store so it never trails the totals by more than one write.
type LeaderboardService struct {
	Store ScoreStore
}

func NewLeaderboardService(store ScoreStore) *LeaderboardService {
	return &LeaderboardService{Store: store}
}

// Top returns at most n entries sorted by points descending.
func (s *LeaderboardService) Top(n int) ([]models.LeaderboardEntry, error) {
	entries, err := s.Store.Entries()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// RankOf returns the 1-based position of username, or 0 when unranked.
func (s *LeaderboardService) RankOf(username string) (int, error) {
	entries, err := s.Store.Entries()
	if err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if entry.Username == username {
			return i + 1, nil
		}
	}
	return 0, nil
}
