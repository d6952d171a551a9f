package activity

import "time"

// Mood is a daily mood check-in value.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodOkay  Mood = "okay"
	MoodLow   Mood = "low"
)

// Energy is a daily energy check-in value.
type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

// DailyActivity is the per-day activity record. Check-ins are pointers so
// "no check-in yet" is distinguishable from a logged zero value. JSON field
// names match the legacy client blobs, which the migrator copies verbatim.
type DailyActivity struct {
	FocusSessions     int     `json:"focusSessions"`
	FocusMinutes      int     `json:"focusMinutes"`
	TasksCompleted    int     `json:"tasksCompleted"`
	TasksTotal        int     `json:"tasksTotal"`
	HabitsCompleted   int     `json:"habitsCompleted"`
	HabitsTotal       int     `json:"habitsTotal"`
	MoodCheckin       *Mood   `json:"moodCheckin"`
	EnergyCheckin     *Energy `json:"energyCheckin"`
	ChallengeCheckIns int     `json:"challengeCheckIns"`
	ActiveChallenges  int     `json:"activeChallenges"`
}

// IsActive reports whether the day counts toward the streak.
func (a DailyActivity) IsActive() bool {
	return a.FocusSessions > 0 ||
		a.TasksCompleted > 0 ||
		a.MoodCheckin != nil ||
		a.HabitsCompleted > 0
}

// State is the persisted analytics blob: the daily ledger plus derived
// streaks and running totals. Totals are cumulative and never decrease.
type State struct {
	DailyActivities     map[string]DailyActivity `json:"dailyActivities"`
	CurrentStreak       int                      `json:"currentStreak"`
	LongestStreak       int                      `json:"longestStreak"`
	TotalFocusMinutes   int                      `json:"totalFocusMinutes"`
	TotalTasksCompleted int                      `json:"totalTasksCompleted"`
	TotalFocusSessions  int                      `json:"totalFocusSessions"`
}

// NewState returns the lazily-created default state for a user with no
// persisted analytics yet.
func NewState() State {
	return State{DailyActivities: make(map[string]DailyActivity)}
}

// DateKey formats t as the ledger's calendar-date key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
