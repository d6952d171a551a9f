package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateChallengeRequest represents the request to start a new challenge
type CreateChallengeRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	TotalDays   int        `json:"total_days" binding:"required,min=1"`
	StartDate   *time.Time `json:"start_date,omitempty"`
}

// ChallengeResponse represents a challenge in API responses
type ChallengeResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	TotalDays     int        `json:"total_days"`
	DaysCompleted int        `json:"days_completed"`
	IsActive      bool       `json:"is_active"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ChallengeListResponse represents the response for listing challenges
type ChallengeListResponse struct {
	Challenges []ChallengeResponse `json:"challenges"`
	TotalCount int                 `json:"total_count"`
}

// BadgeResponse represents a badge in API responses
type BadgeResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

// BadgeListResponse represents the full badge catalog with earned state
type BadgeListResponse struct {
	Badges []BadgeResponse `json:"badges"`
}
