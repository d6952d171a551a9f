package dto

// DashboardResponse is the aggregated snapshot the home screen renders from
type DashboardResponse struct {
	CurrentStreak      int             `json:"current_streak"`
	LongestStreak      int             `json:"longest_streak"`
	IdentityScore      int             `json:"identity_score"`
	TotalFocusMinutes  int             `json:"total_focus_minutes"`
	TotalFocusSessions int             `json:"total_focus_sessions"`
	TotalTasks         int             `json:"total_tasks"`
	ActiveChallenges   int             `json:"active_challenges"`
	EarnedBadges       []BadgeResponse `json:"earned_badges"`
}

// InsightResponse carries the daily coaching message
type InsightResponse struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// MigrationResponse summarizes a storage migration run
type MigrationResponse struct {
	Migrated  int `json:"migrated"`
	TotalKeys int `json:"total_keys"`
}
