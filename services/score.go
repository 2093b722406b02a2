package services

// ScoreService is the ledger facade over whichever adapter is wired in.
type ScoreService struct {
	Store ScoreStore
}

func NewScoreService(store ScoreStore) *ScoreService {
	return &ScoreService{Store: store}
}

func (s *ScoreService) GetPoints(username string) (int, error) {
	return s.Store.GetPoints(username)
}

func (s *ScoreService) AddPoints(username string, delta int) (int, error) {
	return s.Store.AddPoints(username, delta)
}

// SetPoints overwrites the total; used by POST /user and POST /leaderboard.
func (s *ScoreService) SetPoints(username string, points int) error {
	return s.Store.SetPoints(username, points)
}
