package journal

import (
	"context"

	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Entry, int64, error)
	CountEntries(ctx context.Context, userID uuid.UUID) int
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	bus    events.Bus
	logger *logger.Logger
}

func NewService(repo Repository, bus events.Bus, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		bus:    bus,
		logger: log,
	}
}

func (s *service) CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	entry := &Entry{
		ID:      uuid.New(),
		UserID:  input.UserID,
		Content: input.Content,
		Mood:    input.Mood,
		Prompt:  input.Prompt,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		EventType: events.EventTypeCacheInvalidate,
		UserID:    entry.UserID.String(),
		EntityID:  entry.ID,
		Details:   map[string]interface{}{"action": "journal_entry_created"},
	})

	return entry, nil
}

func (s *service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListEntries(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Entry, int64, error) {
	return s.repo.FindByUser(ctx, userID, page, pageSize)
}

// CountEntries returns the user's total entry count. Backend failures are
// soft: the count degrades to zero rather than surfacing an error, so a
// badge check against an unreachable backend simply does not unlock.
func (s *service) CountEntries(ctx context.Context, userID uuid.UUID) int {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to count journal entries",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return 0
	}
	return int(count)
}

func (s *service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(events.Event{
		EventType: events.EventTypeCacheInvalidate,
		UserID:    entry.UserID.String(),
		EntityID:  entry.ID,
		Details:   map[string]interface{}{"action": "journal_entry_deleted"},
	})

	return nil
}
