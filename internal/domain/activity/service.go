package activity

import (
	"sync"
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"go.uber.org/zap"
)

// Service is the daily activity ledger. Every mutation re-reads the
// persisted state, applies the increment, recomputes the streak, persists,
// and broadcasts a change event so observers reload.
type Service interface {
	GetState(userID string) State
	LogFocusSession(userID string, minutes int) State
	LogTaskComplete(userID string, totalTasksToday int) State
	LogHabitComplete(userID string, totalHabitsToday int) State
	LogMoodCheckin(userID string, mood Mood, energy *Energy) State
	LogChallengeCheckIn(userID string, activeChallenges int) State
	IdentityScore(userID string) int
	ClearAll(userID string)
}

type service struct {
	store  localstore.Store
	bus    events.Bus
	logger *logger.Logger

	// Serializes read-modify-write cycles; the store itself carries no
	// transaction, writes are last-write-wins.
	mu  sync.Mutex
	now func() time.Time
}

func NewService(store localstore.Store, bus events.Bus, log *logger.Logger) Service {
	return NewServiceWithClock(store, bus, log, time.Now)
}

// NewServiceWithClock is NewService with an injectable clock. "Today" is
// whatever the clock says, which is what tests and the midnight rollover
// rely on.
func NewServiceWithClock(store localstore.Store, bus events.Bus, log *logger.Logger, now func() time.Time) Service {
	return &service{
		store:  store,
		bus:    bus,
		logger: log,
		now:    now,
	}
}

func (s *service) GetState(userID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(userID)
}

func (s *service) LogFocusSession(userID string, minutes int) State {
	if minutes < 0 {
		minutes = 0
	}
	return s.update(userID, "focus_session", func(day *DailyActivity, st *State) {
		day.FocusSessions++
		day.FocusMinutes += minutes
		st.TotalFocusSessions++
		st.TotalFocusMinutes += minutes
	})
}

func (s *service) LogTaskComplete(userID string, totalTasksToday int) State {
	return s.update(userID, "task_complete", func(day *DailyActivity, st *State) {
		day.TasksCompleted++
		if totalTasksToday > day.TasksTotal {
			day.TasksTotal = totalTasksToday
		}
		st.TotalTasksCompleted++
	})
}

func (s *service) LogHabitComplete(userID string, totalHabitsToday int) State {
	return s.update(userID, "habit_complete", func(day *DailyActivity, st *State) {
		day.HabitsCompleted++
		if totalHabitsToday > day.HabitsTotal {
			day.HabitsTotal = totalHabitsToday
		}
	})
}

func (s *service) LogMoodCheckin(userID string, mood Mood, energy *Energy) State {
	return s.update(userID, "mood_checkin", func(day *DailyActivity, st *State) {
		day.MoodCheckin = &mood
		if energy != nil {
			day.EnergyCheckin = energy
		}
	})
}

func (s *service) LogChallengeCheckIn(userID string, activeChallenges int) State {
	return s.update(userID, "challenge_checkin", func(day *DailyActivity, st *State) {
		day.ChallengeCheckIns++
		if activeChallenges > day.ActiveChallenges {
			day.ActiveChallenges = activeChallenges
		}
	})
}

func (s *service) IdentityScore(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(userID)
	return ComputeIdentityScore(st.DailyActivities, s.now())
}

// ClearAll wipes every per-user key. Only invoked at new-account creation.
func (s *service) ClearAll(userID string) {
	s.mu.Lock()
	for _, base := range localstore.BaseKeys {
		localstore.Clear(s.store, base, userID)
	}
	s.mu.Unlock()

	s.logger.Info("cleared local state", zap.String("user_id", userID))
	s.bus.Publish(events.Event{
		EventType: events.EventTypeCacheInvalidate,
		UserID:    userID,
		Details:   map[string]interface{}{"action": "data_clear"},
	})
}

// load reads the latest persisted state. Callers hold s.mu.
func (s *service) load(userID string) State {
	st := localstore.Load(s.store, localstore.KeyAnalytics, userID, NewState())
	if st.DailyActivities == nil {
		st.DailyActivities = make(map[string]DailyActivity)
	}
	return st
}

// update runs one fresh read-modify-write cycle: the in-memory state is
// never trusted across calls, so a write from another instance between two
// operations is picked up rather than lost.
func (s *service) update(userID, action string, apply func(day *DailyActivity, st *State)) State {
	s.mu.Lock()
	st := s.load(userID)

	today := s.now()
	key := DateKey(today)
	day := st.DailyActivities[key]
	apply(&day, &st)
	st.DailyActivities[key] = day

	// The streak is recomputed from the ledger, never incremented directly.
	st.CurrentStreak = ComputeStreak(st.DailyActivities, today)
	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
	}

	if err := localstore.Save(s.store, localstore.KeyAnalytics, userID, st); err != nil {
		s.logger.Error("failed to persist analytics state",
			zap.String("user_id", userID),
			zap.Error(err))
	}
	s.mu.Unlock()

	s.bus.Publish(events.Event{
		EventType: events.EventTypeActivityLogged,
		UserID:    userID,
		Details: map[string]interface{}{
			"action":         action,
			"current_streak": st.CurrentStreak,
		},
	})

	return st
}
