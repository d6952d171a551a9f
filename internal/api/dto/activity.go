package dto

// LogFocusRequest records a finished focus session
type LogFocusRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1"`
}

// LogTaskRequest records a completed task along with today's task count
type LogTaskRequest struct {
	TotalTasksToday int `json:"total_tasks_today" binding:"min=0"`
}

// LogHabitRequest records a completed habit along with today's habit count
type LogHabitRequest struct {
	TotalHabitsToday int `json:"total_habits_today" binding:"min=0"`
}

// MoodCheckinRequest records the day's mood, optionally with an energy level
type MoodCheckinRequest struct {
	Mood   string  `json:"mood" binding:"required"`
	Energy *string `json:"energy,omitempty"`
}

// ScoreResponse carries the identity score for today
type ScoreResponse struct {
	IdentityScore int `json:"identity_score"`
}
