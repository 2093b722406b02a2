package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const challengeRetentionDays = 30

// StartChallengeScheduler keeps the daily pool fresh: seeds today's rows on a
// short interval (so the pool exists even before the first GET of the day)
// and prunes rows past the retention window once a day. Lazy seeding on
// request still covers the gap between midnight and the next tick.
func (s *ChallengeService) StartChallengeScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			if err := s.EnsureSeeded(Today()); err != nil {
				log.Printf("[Scheduler] challenge seeding failed: %v", err)
			}
		}),
	)

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().AddDate(0, 0, -challengeRetentionDays).Format(DateLayout)
			removed, err := s.Prune(cutoff)
			if err != nil {
				log.Printf("[Scheduler] challenge pruning failed: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("[Scheduler] pruned %d expired challenge(s)", removed)
			}
		}),
	)
}
