package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		userID   string
		expected string
	}{
		{"empty user returns base unchanged", KeyAnalytics, "", KeyAnalytics},
		{"user id appended with underscore", KeyAnalytics, "u42", "aligned_analytics_u42"},
		{"badges key", KeyBadges, "abc", "aligned_badges_abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyFor(tt.base, tt.userID))
		})
	}
}

func TestLoadReturnsDefaultOnMissingKey(t *testing.T) {
	store := NewMemoryStore()

	got := Load(store, KeyAnalytics, "u1", map[string]int{"fallback": 1})
	assert.Equal(t, map[string]int{"fallback": 1}, got)
}

func TestLoadSwallowsParseFailure(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeyFor(KeyAnalytics, "u1"), "{not json"))

	got := Load(store, KeyAnalytics, "u1", 7)
	assert.Equal(t, 7, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	type prefs struct {
		Theme string `json:"theme"`
		Week  int    `json:"week"`
	}

	require.NoError(t, Save(store, KeyPreferences, "u1", prefs{Theme: "dark", Week: 3}))

	got := Load(store, KeyPreferences, "u1", prefs{})
	assert.Equal(t, prefs{Theme: "dark", Week: 3}, got)

	// A different user sees the default, not u1's value.
	other := Load(store, KeyPreferences, "u2", prefs{Theme: "light"})
	assert.Equal(t, prefs{Theme: "light"}, other)
}

func TestClearRemovesOnlyNamespacedKey(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeyGoals, "legacy"))
	require.NoError(t, store.Set(KeyFor(KeyGoals, "u1"), "mine"))

	Clear(store, KeyGoals, "u1")

	_, ok := store.Get(KeyFor(KeyGoals, "u1"))
	assert.False(t, ok)
	legacy, ok := store.Get(KeyGoals)
	assert.True(t, ok)
	assert.Equal(t, "legacy", legacy)
}
