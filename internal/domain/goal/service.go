package goal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error)
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, filter GoalFilter) ([]Goal, int64, error)
	UpdateGoal(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*Goal, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
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

func (s *service) CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error) {
	milestones, err := json.Marshal(input.Milestones)
	if err != nil {
		milestones = []byte("[]")
	}

	goal := &Goal{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		TargetDate:  input.TargetDate,
		Milestones:  milestones,
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.publishChange(goal, "goal_created")
	return goal, nil
}

func (s *service) GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListGoals(ctx context.Context, filter GoalFilter) ([]Goal, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateGoal(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Title != nil && goal.Title != *input.Title {
		goal.Title = *input.Title
		changed = true
	}
	if input.Description != nil && goal.Description != *input.Description {
		goal.Description = *input.Description
		changed = true
	}
	if input.Category != nil && goal.Category != *input.Category {
		goal.Category = *input.Category
		changed = true
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
		changed = true
	}
	if input.Milestones != nil {
		milestones, err := json.Marshal(input.Milestones)
		if err == nil {
			goal.Milestones = milestones
			changed = true
		}
	}

	if !changed {
		return goal, nil
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	s.publishChange(goal, "goal_updated")
	return goal, nil
}

// UpdateProgress clamps progress to [0,100]. Reaching 100 stamps the
// completion time; dropping back below 100 reopens the goal.
func (s *service) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	goal.Progress = progress

	if progress >= 100 {
		if goal.CompletedAt == nil {
			now := time.Now().UTC()
			goal.CompletedAt = &now
		}
	} else {
		goal.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	s.publishChange(goal, "goal_progress")
	return goal, nil
}

func (s *service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishChange(goal, "goal_deleted")
	return nil
}

func (s *service) publishChange(goal *Goal, action string) {
	s.logger.Debug("goal change", zap.String("action", action), zap.String("goal_id", goal.ID.String()))
	s.bus.Publish(events.Event{
		EventType: events.EventTypeCacheInvalidate,
		UserID:    goal.UserID.String(),
		EntityID:  goal.ID,
		Details:   map[string]interface{}{"action": action, "title": goal.Title},
	})
}
