package dto

import (
	"time"

	"github.com/google/uuid"
)

// MilestoneDTO is the milestone shape accepted and returned by the API
type MilestoneDTO struct {
	Title string `json:"title" binding:"required"`
	Done  bool   `json:"done"`
}

// CreateGoalRequest represents the request to create a new goal
type CreateGoalRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	TargetDate  *time.Time     `json:"target_date,omitempty"`
	Milestones  []MilestoneDTO `json:"milestones,omitempty"`
}

// UpdateGoalRequest represents the request to update an existing goal
type UpdateGoalRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty"`
	TargetDate  *time.Time     `json:"target_date,omitempty"`
	Milestones  []MilestoneDTO `json:"milestones,omitempty"`
}

// UpdateProgressRequest sets a goal's progress percentage
type UpdateProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	TargetDate  *time.Time     `json:"target_date,omitempty"`
	Milestones  []MilestoneDTO `json:"milestones,omitempty"`
	Progress    int            `json:"progress"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// GoalListResponse represents the paginated response for listing goals
type GoalListResponse struct {
	Goals      []GoalResponse `json:"goals"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
