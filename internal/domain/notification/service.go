package notification

import (
	"sync"
	"time"

	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"go.uber.org/zap"
)

// Service manages per-user reminder schedules and runs the periodic due
// check. The check may be invoked more than once within the same logical
// minute (overlapping tickers, restarts); the persisted last-checked
// marker makes the extra invocations no-ops.
type Service interface {
	SetSchedule(userID string, schedule Schedule)
	GetSchedule(userID string) Schedule
	// CheckDue delivers the user's reminder if it is due at now. Returns
	// whether a delivery happened.
	CheckDue(userID string, now time.Time) bool
	// RunDue checks every user in the persisted index, so schedules set
	// before a restart are still covered.
	RunDue(now time.Time)
}

// reminderIndexKey holds the list of user IDs with reminder state. The
// store has no key enumeration, so RunDue needs this index to find them.
const reminderIndexKey = "aligned_reminder_index"

type service struct {
	store     localstore.Store
	deliverer Deliverer
	logger    *logger.Logger

	mu sync.Mutex
}

func NewService(store localstore.Store, deliverer Deliverer, log *logger.Logger) Service {
	return &service{
		store:     store,
		deliverer: deliverer,
		logger:    log,
	}
}

func (s *service) SetSchedule(userID string, schedule Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index(userID)
	state := localstore.Load(s.store, localstore.KeyReminders, userID, reminderState{})
	state.Schedule = schedule
	s.save(userID, state)
}

func (s *service) GetSchedule(userID string) Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index(userID)
	return localstore.Load(s.store, localstore.KeyReminders, userID, reminderState{}).Schedule
}

func (s *service) CheckDue(userID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkDue(userID, now)
}

func (s *service) RunDue(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, userID := range localstore.Load(s.store, reminderIndexKey, "", []string(nil)) {
		s.checkDue(userID, now)
	}
}

// index records userID in the persisted user list. Holds s.mu.
func (s *service) index(userID string) {
	ids := localstore.Load(s.store, reminderIndexKey, "", []string(nil))
	for _, id := range ids {
		if id == userID {
			return
		}
	}
	if err := localstore.Save(s.store, reminderIndexKey, "", append(ids, userID)); err != nil {
		s.logger.Error("failed to persist reminder index",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

// checkDue holds s.mu. The marker is compared before acting, so a second
// call within the same minute sees its own timestamp and stops.
func (s *service) checkDue(userID string, now time.Time) bool {
	state := localstore.Load(s.store, localstore.KeyReminders, userID, reminderState{})
	if !state.Schedule.Enabled {
		return false
	}

	minute := now.Format(minuteLayout)
	if state.LastChecked == minute {
		return false
	}
	state.LastChecked = minute
	s.save(userID, state)

	if now.Hour() != state.Schedule.Hour || now.Minute() != state.Schedule.Minute {
		return false
	}

	body := state.Schedule.Message
	if body == "" {
		body = "Time to check in with your day."
	}
	if err := s.deliverer.Deliver(userID, "Aligned", body); err != nil {
		// Best effort; a failed push is not retried.
		s.logger.Warn("reminder delivery failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return false
	}
	return true
}

func (s *service) save(userID string, state reminderState) {
	if err := localstore.Save(s.store, localstore.KeyReminders, userID, state); err != nil {
		s.logger.Error("failed to persist reminder state",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
