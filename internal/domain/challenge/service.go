package challenge

import (
	"errors"
	"sync"
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrBadgeNotFound     = errors.New("badge not found")
	ErrInvalidInput      = errors.New("invalid input")
)

// Service runs the challenge state machine and the badge unlock rules.
type Service interface {
	CreateChallenge(userID string, input CreateChallengeInput) (*Challenge, error)
	ListChallenges(userID string) []Challenge
	GetChallenge(userID string, id uuid.UUID) (*Challenge, error)
	// CheckIn records a check-in for the given calendar date. A repeat
	// check-in on the same date is a no-op.
	CheckIn(userID string, id uuid.UUID, date time.Time) (*Challenge, error)

	ListBadges(userID string) []Badge
	CheckBadgeUnlock(userID, badgeID string, stats Stats) (*Badge, error)
	CheckAllBadges(userID string, stats Stats) []Badge

	// CompletedCount feeds the challenge-type badge predicate.
	CompletedCount(userID string) int
}

type service struct {
	store  localstore.Store
	ledger activity.Service
	bus    events.Bus
	logger *logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewService(store localstore.Store, ledger activity.Service, bus events.Bus, log *logger.Logger) Service {
	return &service{
		store:  store,
		ledger: ledger,
		bus:    bus,
		logger: log,
		now:    time.Now,
	}
}

func (s *service) CreateChallenge(userID string, input CreateChallengeInput) (*Challenge, error) {
	if input.TotalDays <= 0 {
		return nil, ErrInvalidInput
	}

	start := input.StartDate
	if start.IsZero() {
		start = s.now()
	}

	ch := Challenge{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, input.TotalDays),
		TotalDays:   input.TotalDays,
		CheckIns:    []string{},
	}

	s.mu.Lock()
	list := s.loadChallenges(userID)
	list = append(list, ch)
	s.saveChallenges(userID, list)
	s.mu.Unlock()

	return &ch, nil
}

func (s *service) ListChallenges(userID string) []Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadChallenges(userID)
}

func (s *service) GetChallenge(userID string, id uuid.UUID) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadChallenges(userID)
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrChallengeNotFound
}

func (s *service) CheckIn(userID string, id uuid.UUID, date time.Time) (*Challenge, error) {
	if date.IsZero() {
		date = s.now()
	}
	dateKey := activity.DateKey(date)

	s.mu.Lock()
	list := s.loadChallenges(userID)

	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrChallengeNotFound
	}

	ch := &list[idx]
	if ch.hasCheckIn(dateKey) {
		// Idempotent per calendar date: nothing changes, nothing fires.
		result := *ch
		s.mu.Unlock()
		return &result, nil
	}

	ch.CheckIns = append(ch.CheckIns, dateKey)

	completedNow := false
	if ch.CompletedAt == nil && ch.DaysCompleted() >= ch.TotalDays {
		// Active -> Complete is the only transition and it is terminal.
		completedAt := s.now()
		ch.CompletedAt = &completedAt
		completedNow = true
	}

	activeCount := 0
	for i := range list {
		if list[i].IsActive() {
			activeCount++
		}
	}

	s.saveChallenges(userID, list)
	result := *ch
	s.mu.Unlock()

	// The ledger gets one challenge check-in per new date; the identity
	// score reads activeChallenges from the same entry.
	s.ledger.LogChallengeCheckIn(userID, activeCount)

	if completedNow {
		s.logger.Info("challenge completed",
			zap.String("user_id", userID),
			zap.String("challenge_id", ch.ID.String()),
			zap.Int("total_days", ch.TotalDays))
		s.bus.Publish(events.Event{
			EventType: events.EventTypeChallengeCompleted,
			UserID:    userID,
			EntityID:  ch.ID,
			Details:   map[string]interface{}{"title": ch.Title, "total_days": ch.TotalDays},
		})
	}

	return &result, nil
}

func (s *service) CompletedCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, ch := range s.loadChallenges(userID) {
		if !ch.IsActive() {
			count++
		}
	}
	return count
}

func (s *service) ListBadges(userID string) []Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadBadges(userID)
}

func (s *service) CheckBadgeUnlock(userID, badgeID string, stats Stats) (*Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	badges := s.loadBadges(userID)
	for i := range badges {
		if badges[i].ID != badgeID {
			continue
		}
		if s.unlock(&badges[i], userID, stats) {
			s.saveBadges(userID, badges)
		}
		result := badges[i]
		return &result, nil
	}
	return nil, ErrBadgeNotFound
}

// CheckAllBadges evaluates every unearned badge against stats and returns
// the ones earned by this call. Already-earned badges keep their original
// EarnedAt untouched.
func (s *service) CheckAllBadges(userID string, stats Stats) []Badge {
	s.mu.Lock()
	defer s.mu.Unlock()

	badges := s.loadBadges(userID)
	var earned []Badge
	changed := false
	for i := range badges {
		if s.unlock(&badges[i], userID, stats) {
			earned = append(earned, badges[i])
			changed = true
		}
	}
	if changed {
		s.saveBadges(userID, badges)
	}
	return earned
}

// unlock stamps EarnedAt when the predicate first holds. Returns whether
// the badge was earned by this evaluation.
func (s *service) unlock(b *Badge, userID string, stats Stats) bool {
	if b.EarnedAt != nil {
		return false
	}
	if !b.met(stats) {
		return false
	}
	earnedAt := s.now()
	b.EarnedAt = &earnedAt

	s.logger.Info("badge earned",
		zap.String("user_id", userID),
		zap.String("badge_id", b.ID))
	s.bus.Publish(events.Event{
		EventType: events.EventTypeBadgeEarned,
		UserID:    userID,
		Details:   map[string]interface{}{"badge_id": b.ID, "title": b.Title},
	})
	return true
}

// loadBadges reads the user's badge state, lazily seeding the catalog and
// folding in badges added since the state was first written.
func (s *service) loadBadges(userID string) []Badge {
	stored := localstore.Load(s.store, localstore.KeyBadges, userID, []Badge(nil))

	byID := make(map[string]Badge, len(stored))
	for _, b := range stored {
		byID[b.ID] = b
	}

	catalog := defaultBadges()
	for i := range catalog {
		if existing, ok := byID[catalog[i].ID]; ok {
			catalog[i].EarnedAt = existing.EarnedAt
		}
	}
	return catalog
}

func (s *service) saveBadges(userID string, badges []Badge) {
	if err := localstore.Save(s.store, localstore.KeyBadges, userID, badges); err != nil {
		s.logger.Error("failed to persist badges",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (s *service) loadChallenges(userID string) []Challenge {
	return localstore.Load(s.store, localstore.KeyChallenges, userID, []Challenge(nil))
}

func (s *service) saveChallenges(userID string, list []Challenge) {
	if err := localstore.Save(s.store, localstore.KeyChallenges, userID, list); err != nil {
		s.logger.Error("failed to persist challenges",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
