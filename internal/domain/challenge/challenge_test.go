package challenge

import (
	"testing"
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestService(store localstore.Store) (*service, activity.Service) {
	bus := events.NewMemoryBus()
	log := logger.NewLogger()
	ledger := activity.NewServiceWithClock(store, bus, log, func() time.Time { return now })
	svc := &service{
		store:  store,
		ledger: ledger,
		bus:    bus,
		logger: log,
		now:    func() time.Time { return now },
	}
	return svc, ledger
}

func TestCheckInIsIdempotentPerDate(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	ch, err := svc.CreateChallenge("u1", CreateChallengeInput{Title: "Cold showers", TotalDays: 30})
	require.NoError(t, err)

	first, err := svc.CheckIn("u1", ch.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.DaysCompleted())

	// Same calendar date again: no change.
	second, err := svc.CheckIn("u1", ch.ID, now.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, second.DaysCompleted())

	// A different date counts.
	third, err := svc.CheckIn("u1", ch.ID, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, third.DaysCompleted())
}

func TestChallengeCompletesExactlyAtTarget(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	bus := svc.bus.(*events.MemoryBus)
	var completions []events.Event
	bus.Subscribe(events.EventTypeChallengeCompleted, func(e events.Event) { completions = append(completions, e) })

	ch, err := svc.CreateChallenge("u1", CreateChallengeInput{Title: "Stretch", TotalDays: 3})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := svc.CheckIn("u1", ch.ID, now.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.True(t, got.IsActive())
		assert.Nil(t, got.CompletedAt)
	}

	final, err := svc.CheckIn("u1", ch.ID, now.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.False(t, final.IsActive())
	require.NotNil(t, final.CompletedAt)
	assert.Len(t, completions, 1)

	// Completion is terminal: a later check-in on a new date must not
	// re-stamp CompletedAt or fire another event.
	stamped := *final.CompletedAt
	again, err := svc.CheckIn("u1", ch.ID, now.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, stamped, *again.CompletedAt)
	assert.Len(t, completions, 1)

	assert.Equal(t, 1, svc.CompletedCount("u1"))
}

func TestCheckInFeedsTheLedger(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, ledger := newTestService(store)

	a, err := svc.CreateChallenge("u1", CreateChallengeInput{Title: "Read", TotalDays: 10})
	require.NoError(t, err)
	_, err = svc.CreateChallenge("u1", CreateChallengeInput{Title: "Run", TotalDays: 10})
	require.NoError(t, err)

	_, err = svc.CheckIn("u1", a.ID, now)
	require.NoError(t, err)

	day := ledger.GetState("u1").DailyActivities[activity.DateKey(now)]
	assert.Equal(t, 1, day.ChallengeCheckIns)
	assert.Equal(t, 2, day.ActiveChallenges)

	// Duplicate check-in does not touch the ledger either.
	_, err = svc.CheckIn("u1", a.ID, now)
	require.NoError(t, err)
	day = ledger.GetState("u1").DailyActivities[activity.DateKey(now)]
	assert.Equal(t, 1, day.ChallengeCheckIns)
}

func TestCreateChallengeRejectsNonPositiveTarget(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	_, err := svc.CreateChallenge("u1", CreateChallengeInput{Title: "Bad", TotalDays: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBadgeUnlockIsMonotonic(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	// Below threshold: nothing earned.
	badge, err := svc.CheckBadgeUnlock("u1", "streak_7", Stats{CurrentStreak: 6})
	require.NoError(t, err)
	assert.Nil(t, badge.EarnedAt)

	// Exactly at threshold: earned.
	badge, err = svc.CheckBadgeUnlock("u1", "streak_7", Stats{CurrentStreak: 7})
	require.NoError(t, err)
	require.NotNil(t, badge.EarnedAt)
	earnedAt := *badge.EarnedAt

	// The streak dropping afterward does not claw the badge back, and
	// re-evaluation never re-stamps.
	badge, err = svc.CheckBadgeUnlock("u1", "streak_7", Stats{CurrentStreak: 2})
	require.NoError(t, err)
	require.NotNil(t, badge.EarnedAt)
	assert.Equal(t, earnedAt, *badge.EarnedAt)
}

func TestCheckAllBadgesReturnsOnlyNewlyEarned(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	stats := Stats{CurrentStreak: 8, TotalFocusMinutes: 600, JournalEntries: 3}

	earned := svc.CheckAllBadges("u1", stats)
	ids := make([]string, 0, len(earned))
	for _, b := range earned {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"streak_7", "focus_500"}, ids)

	// Idempotent in bulk: the same stats earn nothing twice.
	assert.Empty(t, svc.CheckAllBadges("u1", stats))

	// Progressing a different stat earns only that badge.
	earned = svc.CheckAllBadges("u1", Stats{JournalEntries: 10})
	require.Len(t, earned, 1)
	assert.Equal(t, "journal_10", earned[0].ID)
}

func TestChallengeBadgeRequiresCompletedChallenge(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	badge, err := svc.CheckBadgeUnlock("u1", "challenge_90", Stats{ChallengesCompleted: 0})
	require.NoError(t, err)
	assert.Nil(t, badge.EarnedAt)

	badge, err = svc.CheckBadgeUnlock("u1", "challenge_90", Stats{ChallengesCompleted: 1})
	require.NoError(t, err)
	assert.NotNil(t, badge.EarnedAt)
}

func TestCheckInUnknownChallenge(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc, _ := newTestService(store)

	_, err := svc.CheckIn("u1", uuid.New(), now)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}
