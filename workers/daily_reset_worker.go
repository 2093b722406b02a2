package workers

import (
	"context"
	"log"
	"time"

	"ecoscan-backend/services"
)

// PollDailyResets sweeps daily-progress rows whose date key has gone stale,
// so a new calendar day shows a zeroed streak even for users who have not
// classified anything yet. The per-request advance path resets lazily too;
// the sweep and the lazy reset are idempotent against each other.
func PollDailyResets(ctx context.Context, store services.DailyProgressStore, pollInterval time.Duration) {
	log.Println("Starting daily progress sweep...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Daily progress sweep stopped.")
			return
		case <-ticker.C:
			today := services.Today()
			reset, err := store.ResetStaleProgress(today)
			if err != nil {
				log.Printf("Error sweeping daily progress: %v", err)
				continue
			}
			if reset > 0 {
				log.Printf("Reset %d stale daily progress row(s) for %s", reset, today)
			}
		}
	}
}
