package handlers

import (
	"encoding/json"

	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/domain/challenge"
	"github.com/Scalium-Tech/aligned/internal/domain/goal"
	"github.com/Scalium-Tech/aligned/internal/domain/journal"
	"github.com/Scalium-Tech/aligned/internal/domain/user"
)

// UserToResponse converts a user domain model to its API representation
func UserToResponse(u *user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Timezone:    u.Timezone,
		OnboardedAt: u.OnboardedAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ChallengeToResponse converts a challenge domain model to its API representation
func ChallengeToResponse(ch *challenge.Challenge) dto.ChallengeResponse {
	return dto.ChallengeResponse{
		ID:            ch.ID,
		Title:         ch.Title,
		Description:   ch.Description,
		StartDate:     ch.StartDate,
		EndDate:       ch.EndDate,
		TotalDays:     ch.TotalDays,
		DaysCompleted: ch.DaysCompleted(),
		IsActive:      ch.IsActive(),
		CompletedAt:   ch.CompletedAt,
	}
}

// BadgeToResponse converts a badge domain model to its API representation
func BadgeToResponse(b challenge.Badge) dto.BadgeResponse {
	return dto.BadgeResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Earned:      b.EarnedAt != nil,
		EarnedAt:    b.EarnedAt,
	}
}

// GoalToResponse converts a goal domain model to its API representation
func GoalToResponse(g *goal.Goal) dto.GoalResponse {
	resp := dto.GoalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		TargetDate:  g.TargetDate,
		Progress:    g.Progress,
		CompletedAt: g.CompletedAt,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}

	if len(g.Milestones) > 0 {
		var milestones []dto.MilestoneDTO
		if err := json.Unmarshal(g.Milestones, &milestones); err == nil {
			resp.Milestones = milestones
		}
	}

	return resp
}

// MilestonesToDomain converts API milestones into their domain shape
func MilestonesToDomain(in []dto.MilestoneDTO) []goal.Milestone {
	if len(in) == 0 {
		return nil
	}
	out := make([]goal.Milestone, len(in))
	for i, m := range in {
		out[i] = goal.Milestone{Title: m.Title, Done: m.Done}
	}
	return out
}

// EntryToResponse converts a journal entry to its API representation
func EntryToResponse(e *journal.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:        e.ID,
		Content:   e.Content,
		Mood:      e.Mood,
		Prompt:    e.Prompt,
		CreatedAt: e.CreatedAt,
	}
}
