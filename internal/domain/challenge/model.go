package challenge

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a fixed-length, check-in-based personal commitment. CheckIns
// holds unique calendar-date strings; order is not significant. A challenge
// is active exactly while CompletedAt is unset, and completion is terminal.
type Challenge struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	TotalDays   int        `json:"totalDays"`
	CheckIns    []string   `json:"checkIns"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DaysCompleted is the number of distinct check-in dates.
func (c *Challenge) DaysCompleted() int {
	return len(c.CheckIns)
}

// IsActive reports whether the challenge has not yet completed. Deriving it
// from CompletedAt keeps the two from drifting apart in storage.
func (c *Challenge) IsActive() bool {
	return c.CompletedAt == nil
}

func (c *Challenge) hasCheckIn(date string) bool {
	for _, d := range c.CheckIns {
		if d == date {
			return true
		}
	}
	return false
}

// CreateChallengeInput represents the input for starting a new challenge
type CreateChallengeInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TotalDays   int       `json:"totalDays"`
	StartDate   time.Time `json:"startDate"`
}

// RequirementType classifies what cumulative stat a badge requirement
// reads.
type RequirementType string

const (
	RequirementStreak    RequirementType = "streak"
	RequirementFocus     RequirementType = "focus"
	RequirementTasks     RequirementType = "tasks"
	RequirementJournal   RequirementType = "journal"
	RequirementChallenge RequirementType = "challenge"
)

// Requirement is the unlock predicate for a badge.
type Requirement struct {
	Type  RequirementType `json:"type"`
	Value int             `json:"value"`
}

// Badge unlocks once its requirement is first satisfied. EarnedAt, once
// set, is never cleared or re-stamped.
type Badge struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Requirement Requirement `json:"requirement"`
	EarnedAt    *time.Time  `json:"earnedAt,omitempty"`
}

// Stats are the cumulative figures badge predicates evaluate against.
type Stats struct {
	CurrentStreak       int `json:"currentStreak"`
	TotalFocusMinutes   int `json:"totalFocusMinutes"`
	TotalTasksCompleted int `json:"totalTasksCompleted"`
	JournalEntries      int `json:"journalEntries"`
	ChallengesCompleted int `json:"challengesCompleted"`
}

// met evaluates the badge's requirement against stats. Pure; callers decide
// whether to stamp.
func (b *Badge) met(stats Stats) bool {
	switch b.Requirement.Type {
	case RequirementStreak:
		return stats.CurrentStreak >= b.Requirement.Value
	case RequirementFocus:
		return stats.TotalFocusMinutes >= b.Requirement.Value
	case RequirementTasks:
		return stats.TotalTasksCompleted >= b.Requirement.Value
	case RequirementJournal:
		return stats.JournalEntries >= b.Requirement.Value
	case RequirementChallenge:
		// Value holds the nominal challenge length for display; the
		// unlock itself needs one completed challenge of any length.
		return stats.ChallengesCompleted >= 1
	default:
		return false
	}
}

// defaultBadges is the canonical badge catalog. IDs must stay stable
// because clients persist them.
func defaultBadges() []Badge {
	return []Badge{
		{ID: "streak_7", Title: "One Week Strong", Description: "Keep a 7-day streak", Requirement: Requirement{Type: RequirementStreak, Value: 7}},
		{ID: "streak_30", Title: "Monthly Momentum", Description: "Keep a 30-day streak", Requirement: Requirement{Type: RequirementStreak, Value: 30}},
		{ID: "focus_500", Title: "Deep Worker", Description: "Log 500 focus minutes", Requirement: Requirement{Type: RequirementFocus, Value: 500}},
		{ID: "focus_2000", Title: "Flow State", Description: "Log 2000 focus minutes", Requirement: Requirement{Type: RequirementFocus, Value: 2000}},
		{ID: "tasks_100", Title: "Centurion", Description: "Complete 100 tasks", Requirement: Requirement{Type: RequirementTasks, Value: 100}},
		{ID: "journal_10", Title: "Reflective Mind", Description: "Write 10 journal entries", Requirement: Requirement{Type: RequirementJournal, Value: 10}},
		{ID: "challenge_90", Title: "Transformed", Description: "Finish a 90-day challenge", Requirement: Requirement{Type: RequirementChallenge, Value: 90}},
	}
}
