package services

import (
	"log"
	"os"
	"strconv"

	"ecoscan-backend/models"
)

const (
	defaultRecycleThreshold = 5
	defaultCompostThreshold = 3
)

// DefaultAchievementRules builds the rule set, reading thresholds from
// ACHIEVEMENT_RECYCLE_THRESHOLD / ACHIEVEMENT_COMPOST_THRESHOLD when set.
// Rule order is unlock order when several thresholds are crossed at once.
func DefaultAchievementRules() []models.AchievementRule {
	return []models.AchievementRule{
		{Name: "Recycle Master", Action: models.ActionRecycle, Threshold: thresholdFromEnv("ACHIEVEMENT_RECYCLE_THRESHOLD", defaultRecycleThreshold)},
		{Name: "Compost King", Action: models.ActionCompost, Threshold: thresholdFromEnv("ACHIEVEMENT_COMPOST_THRESHOLD", defaultCompostThreshold)},
	}
}

func thresholdFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Printf("invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

// AchievementService evaluates a user's history against the rules and keeps
// the unlocked set. Notify fires once per newly crossed rule.
type AchievementService struct {
	Store  AchievementStore
	Rules  []models.AchievementRule
	Notify func(username, name string)
}

func NewAchievementService(store AchievementStore, rules []models.AchievementRule) *AchievementService {
	return &AchievementService{
		Store: store,
		Rules: rules,
		Notify: func(username, name string) {
			log.Printf("achievement unlocked: %s -> %s", username, name)
		},
	}
}

// Evaluate returns the names newly unlocked by this pass, in rule order.
// Re-evaluating the same history is a no-op for already-unlocked rules.
func (s *AchievementService) Evaluate(username string, history []models.Classification) ([]string, error) {
	unlocked, err := s.Store.UnlockedFor(username)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(unlocked))
	for _, name := range unlocked {
		have[name] = true
	}

	counts := make(map[models.Action]int)
	for _, ev := range history {
		counts[ev.Action]++
	}

	var newly []string
	for _, rule := range s.Rules {
		if have[rule.Name] || counts[rule.Action] < rule.Threshold {
			continue
		}
		// Racing evaluators can both reach this point; the store insert
		// decides the winner, and only the winner reports and notifies.
		inserted, err := s.Store.Unlock(username, rule.Name)
		if err != nil {
			return newly, err
		}
		if !inserted {
			continue
		}
		newly = append(newly, rule.Name)
		if s.Notify != nil {
			s.Notify(username, rule.Name)
		}
	}
	return newly, nil
}

// UnlockedFor exposes the stored set for profile views.
func (s *AchievementService) UnlockedFor(username string) ([]string, error) {
	return s.Store.UnlockedFor(username)
}
