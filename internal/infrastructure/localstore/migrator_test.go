package localstore

import (
	"errors"
	"strings"
	"testing"

	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyStore fails writes for keys containing a marker substring.
type faultyStore struct {
	*MemoryStore
	failSubstr string
}

func (f *faultyStore) Set(key, value string) error {
	if f.failSubstr != "" && strings.Contains(key, f.failSubstr) {
		return errors.New("write failed")
	}
	return f.MemoryStore.Set(key, value)
}

func seedLegacy(t *testing.T, store Store, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, store.Set(k, `{"legacy":true}`))
	}
}

func TestMigrateCopiesLegacyKeysOnce(t *testing.T) {
	store := NewMemoryStore()
	seedLegacy(t, store, KeyAnalytics, KeyChallenges, KeyBadges)

	m := NewMigrator(store, events.NewMemoryBus(), logger.NewLogger())

	first := m.Migrate("u1")
	assert.Equal(t, 3, first.Migrated)
	assert.Equal(t, len(BaseKeys), first.TotalKeys)

	for _, base := range []string{KeyAnalytics, KeyChallenges, KeyBadges} {
		v, ok := store.Get(KeyFor(base, "u1"))
		require.True(t, ok, "expected %s to be migrated", base)
		assert.Equal(t, `{"legacy":true}`, v)
	}

	// Guarded by the completion flag: the second run is a no-op.
	second := m.Migrate("u1")
	assert.Equal(t, 0, second.Migrated)
	assert.Equal(t, len(BaseKeys), second.TotalKeys)
}

func TestMigrateSkipsExistingNamespacedValues(t *testing.T) {
	store := NewMemoryStore()
	seedLegacy(t, store, KeyAnalytics, KeyGoals)
	require.NoError(t, store.Set(KeyFor(KeyAnalytics, "u1"), `{"mine":true}`))

	m := NewMigrator(store, events.NewMemoryBus(), logger.NewLogger())
	report := m.Migrate("u1")

	assert.Equal(t, 1, report.Migrated)
	v, _ := store.Get(KeyFor(KeyAnalytics, "u1"))
	assert.Equal(t, `{"mine":true}`, v, "existing namespaced value must not be overwritten")
}

func TestMigratePerUserIsolation(t *testing.T) {
	store := NewMemoryStore()
	seedLegacy(t, store, KeyAnalytics)

	m := NewMigrator(store, events.NewMemoryBus(), logger.NewLogger())

	assert.Equal(t, 1, m.Migrate("u1").Migrated)
	// A different user gets their own copy; u1's flag does not gate them.
	assert.Equal(t, 1, m.Migrate("u2").Migrated)
}

func TestForceRemigrateClearsFlag(t *testing.T) {
	store := NewMemoryStore()
	seedLegacy(t, store, KeyAnalytics)

	m := NewMigrator(store, events.NewMemoryBus(), logger.NewLogger())
	require.Equal(t, 1, m.Migrate("u1").Migrated)

	// Remove the namespaced copy, then force: the flag no longer blocks.
	store.Remove(KeyFor(KeyAnalytics, "u1"))
	report := m.ForceRemigrate("u1")
	assert.Equal(t, 1, report.Migrated)
}

func TestMigratePublishesEventAfterRun(t *testing.T) {
	store := NewMemoryStore()
	seedLegacy(t, store, KeyAnalytics, KeyChallenges)

	bus := events.NewMemoryBus()
	var published []events.Event
	bus.Subscribe(events.EventTypeDataMigrated, func(e events.Event) {
		published = append(published, e)
	})

	m := NewMigrator(store, bus, logger.NewLogger())
	m.Migrate("u1")

	require.Len(t, published, 1)
	assert.Equal(t, "u1", published[0].UserID)
	report, ok := published[0].Details.(Report)
	require.True(t, ok)
	assert.Equal(t, 2, report.Migrated)

	// The flag-gated no-op must stay silent.
	m.Migrate("u1")
	assert.Len(t, published, 1)
}

func TestMigrateContinuesPastFailedKeys(t *testing.T) {
	faulty := &faultyStore{MemoryStore: NewMemoryStore(), failSubstr: ""}
	seedLegacy(t, faulty, KeyAnalytics, KeyChallenges, KeyBadges)
	faulty.failSubstr = "challenges"

	m := NewMigrator(faulty, events.NewMemoryBus(), logger.NewLogger())
	report := m.Migrate("u1")

	// Best effort: the failing key is skipped, the rest still migrate.
	assert.Equal(t, 2, report.Migrated)
	_, ok := faulty.Get(KeyFor(KeyChallenges, "u1"))
	assert.False(t, ok)
	_, ok = faulty.Get(KeyFor(KeyBadges, "u1"))
	assert.True(t, ok)
}
