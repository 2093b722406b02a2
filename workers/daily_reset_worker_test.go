package workers

import (
	"context"
	"testing"
	"time"

	"ecoscan-backend/models"
	"ecoscan-backend/services"

	"github.com/stretchr/testify/require"
)

func TestPollDailyResetsSweepsStaleRows(t *testing.T) {
	store := services.NewMemStore()
	require.NoError(t, store.SaveProgress(&models.DailyProgress{
		Username: "ana", Date: "2000-01-01", Count: 5, Completed: true,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go PollDailyResets(ctx, store, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for {
		p, err := store.Progress("ana")
		require.NoError(t, err)
		if p.Date == services.Today() && p.Count == 0 && !p.Completed {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("sweep never reset the stale row: %+v", p)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
