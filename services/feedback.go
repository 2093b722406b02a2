package services

import (
	"time"

	"ecoscan-backend/models"

	"github.com/google/uuid"
)

type FeedbackService struct {
	Store FeedbackStore
}

func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{Store: store}
}

// Submit appends one feedback row; a missing username becomes the anonymous
// label.
func (s *FeedbackService) Submit(content, username string) error {
	if username == "" {
		username = models.AnonymousUser
	}
	return s.Store.AppendFeedback(&models.Feedback{
		ID:        uuid.NewString(),
		Content:   content,
		Username:  username,
		Timestamp: time.Now().UTC(),
	})
}
