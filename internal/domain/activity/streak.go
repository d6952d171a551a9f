package activity

import (
	"math"
	"time"
)

// maxStreakScan bounds the backward scan; a streak older than a year is
// reported as 365.
const maxStreakScan = 365

// ComputeStreak derives the current consecutive-activity streak by walking
// backward day-by-day from today. An inactive day terminates the scan unless
// it is today itself: an empty today means the streak is still alive but not
// yet extended, so the count through yesterday stands. Only today gets this
// leniency; any earlier gap breaks the streak immediately.
func ComputeStreak(activities map[string]DailyActivity, today time.Time) int {
	streak := 0
	for i := 0; i < maxStreakScan; i++ {
		day, ok := activities[DateKey(today.AddDate(0, 0, -i))]
		if ok && day.IsActive() {
			streak++
			continue
		}
		if i != 0 {
			break
		}
	}
	return streak
}

// ComputeIdentityScore derives today's completion percentage from today's
// ledger entry only. Each category contributes planned actions to the
// denominator and completed actions to the numerator; a logged focus
// session counts as both. The score is a same-day snapshot: it starts at 0
// every calendar day and says nothing about past days.
func ComputeIdentityScore(activities map[string]DailyActivity, today time.Time) int {
	day, ok := activities[DateKey(today)]
	if !ok {
		return 0
	}

	completed, total := 0, 0

	if day.TasksTotal > 0 {
		total += day.TasksTotal
		completed += day.TasksCompleted
	}
	if day.HabitsTotal > 0 {
		total += day.HabitsTotal
		completed += day.HabitsCompleted
	}
	if day.MoodCheckin != nil {
		total++
		completed++
	}
	total += day.FocusSessions
	completed += day.FocusSessions
	total += day.ActiveChallenges
	completed += day.ChallengeCheckIns

	if total == 0 {
		return 0
	}

	pct := 100 * float64(completed) / float64(total)
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(pct))
}
