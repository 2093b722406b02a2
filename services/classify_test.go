package services

import (
	"sync"
	"testing"
	"time"

	"ecoscan-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedOracle replays a fixed sequence of outcomes.
type scriptedOracle struct {
	results []models.ClassificationResult
	next    int
}

func (o *scriptedOracle) Classify(_ []byte) models.ClassificationResult {
	r := o.results[o.next%len(o.results)]
	o.next++
	return r
}

func plasticOutcome() models.ClassificationResult {
	return models.ClassificationResult{Type: "Plastic", Action: models.ActionRecycle, Disposal: "blue recycling bin", Points: 10}
}

func organicOutcome() models.ClassificationResult {
	return models.ClassificationResult{Type: "Organic", Action: models.ActionCompost, Disposal: "green compost bin", Points: 12}
}

func newClassifyFixture(results ...models.ClassificationResult) (*ClassifyService, *MemStore) {
	store := NewMemStore()
	achievements := NewAchievementService(store, testRules())
	achievements.Notify = nil
	svc := NewClassifyService(store, &scriptedOracle{results: results}, achievements)
	svc.Now = func() time.Time {
		return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func TestRecordAppendsEventAndAwardsPoints(t *testing.T) {
	svc, store := newClassifyFixture(plasticOutcome())

	outcome, err := svc.Record("ana", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Plastic", outcome.Result.Type)
	assert.Equal(t, 10, outcome.NewTotal)
	assert.Equal(t, "Eco Novice", outcome.Level)
	assert.Zero(t, outcome.DailyBonus)
	assert.Empty(t, outcome.NewAchievements)

	history, err := store.HistoryFor("ana")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionRecycle, history[0].Action)
	assert.Equal(t, "ana", history[0].Username)

	total, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}

func TestRecordHistoryNewestFirst(t *testing.T) {
	svc, store := newClassifyFixture(plasticOutcome(), organicOutcome())
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.Now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}

	_, err := svc.Record("ana", nil)
	require.NoError(t, err)
	_, err = svc.Record("ana", nil)
	require.NoError(t, err)

	history, err := store.HistoryFor("ana")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Organic", history[0].Type)
	assert.True(t, history[0].Timestamp.After(history[1].Timestamp))
}

func TestRecordThirdActionEarnsDailyBonusOnce(t *testing.T) {
	svc, store := newClassifyFixture(plasticOutcome())

	for i := 0; i < 2; i++ {
		outcome, err := svc.Record("ana", nil)
		require.NoError(t, err)
		assert.Zero(t, outcome.DailyBonus)
	}

	third, err := svc.Record("ana", nil)
	require.NoError(t, err)
	assert.Equal(t, DailyBonusPoints, third.DailyBonus)
	assert.Equal(t, 3*10+DailyBonusPoints, third.NewTotal)
	assert.Equal(t, "Eco Warrior", third.Level, "bonus lifts the display level")

	fourth, err := svc.Record("ana", nil)
	require.NoError(t, err)
	assert.Zero(t, fourth.DailyBonus, "the latch fires once per day")

	total, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Equal(t, 4*10+DailyBonusPoints, total)
}

// constantOracle always returns the same outcome; unlike scriptedOracle it
// carries no state, so concurrent submissions can share it.
type constantOracle struct {
	result models.ClassificationResult
}

func (o constantOracle) Classify(_ []byte) models.ClassificationResult {
	return o.result
}

func TestConcurrentRecordsAwardDailyBonusOnce(t *testing.T) {
	svc, store := newClassifyFixture(plasticOutcome())
	svc.Oracle = constantOracle{result: plasticOutcome()}

	const submissions = 4
	outcomes := make([]*ClassifyOutcome, submissions)
	errs := make([]error, submissions)
	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = svc.Record("ana", nil)
		}(i)
	}
	wg.Wait()

	latches := 0
	for i := range outcomes {
		require.NoError(t, errs[i])
		if outcomes[i].DailyBonus > 0 {
			latches++
		}
	}
	assert.Equal(t, 1, latches, "one submission earns the +50, however they interleave")

	total, err := store.GetPoints("ana")
	require.NoError(t, err)
	assert.Equal(t, submissions*10+DailyBonusPoints, total)
}

func TestRecordBonusResetsAcrossDays(t *testing.T) {
	svc, _ := newClassifyFixture(plasticOutcome())

	day := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return day }
	for i := 0; i < 3; i++ {
		_, err := svc.Record("ana", nil)
		require.NoError(t, err)
	}

	day = day.AddDate(0, 0, 1)
	outcome, err := svc.Record("ana", nil)
	require.NoError(t, err)
	assert.Zero(t, outcome.DailyBonus)

	for i := 0; i < 2; i++ {
		outcome, err = svc.Record("ana", nil)
		require.NoError(t, err)
	}
	assert.Equal(t, DailyBonusPoints, outcome.DailyBonus, "a new day can earn the bonus again")
}

func TestRecordUnlocksAchievements(t *testing.T) {
	svc, _ := newClassifyFixture(organicOutcome())

	var outcome *ClassifyOutcome
	var err error
	for i := 0; i < 3; i++ {
		outcome, err = svc.Record("ana", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Compost King"}, outcome.NewAchievements)

	// One more compost event unlocks nothing new.
	outcome, err = svc.Record("ana", nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.NewAchievements)
}

func TestRandomOracleDrawsFromFixedSet(t *testing.T) {
	oracle := NewRandomOracle()
	valid := make(map[string]bool)
	for _, outcome := range models.ClassificationOutcomes {
		valid[outcome.Type] = true
	}
	for i := 0; i < 50; i++ {
		result := oracle.Classify([]byte("ignored"))
		assert.True(t, valid[result.Type])
		assert.NotEmpty(t, result.Disposal)
		assert.Positive(t, result.Points)
	}
}
