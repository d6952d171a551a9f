package localstore

import "encoding/json"

// Base keys for per-user state. These predate user namespacing, which is why
// the migrator copies them into their namespaced equivalents.
const (
	KeyAnalytics   = "aligned_analytics"
	KeyChallenges  = "aligned_challenges"
	KeyBadges      = "aligned_badges"
	KeyGoals       = "aligned_goals"
	KeyJournal     = "aligned_journal"
	KeyPreferences = "aligned_preferences"
	KeyOnboarding  = "aligned_onboarding"
	KeyReminders   = "aligned_reminders"

	keyMigrationDone = "aligned_migration_complete"
)

// BaseKeys lists every per-user base key, in migration order.
var BaseKeys = []string{
	KeyAnalytics,
	KeyChallenges,
	KeyBadges,
	KeyGoals,
	KeyJournal,
	KeyPreferences,
	KeyOnboarding,
	KeyReminders,
}

// KeyFor derives the namespaced key for a user. An empty userID returns the
// base key unchanged, preserving pre-namespacing behavior.
func KeyFor(base, userID string) string {
	if userID == "" {
		return base
	}
	return base + "_" + userID
}

// Load reads the namespaced key and decodes it into a T. A missing key or a
// parse failure returns def; the failure is swallowed, not surfaced.
func Load[T any](s Store, base, userID string, def T) T {
	raw, ok := s.Get(KeyFor(base, userID))
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Save serializes value and writes it under the namespaced key.
func Save[T any](s Store, base, userID string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(KeyFor(base, userID), string(raw))
}

// Clear deletes the namespaced key.
func Clear(s Store, base, userID string) {
	s.Remove(KeyFor(base, userID))
}
