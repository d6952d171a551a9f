package localstore

import (
	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"go.uber.org/zap"
)

// Report summarizes a migration run.
type Report struct {
	Migrated  int `json:"migrated"`
	TotalKeys int `json:"total_keys"`
}

// Migrator copies legacy (non-namespaced) values into their per-user
// namespaced keys, exactly once per user.
type Migrator struct {
	store  Store
	keys   []string
	bus    events.Bus
	logger *logger.Logger
}

func NewMigrator(store Store, bus events.Bus, log *logger.Logger) *Migrator {
	return &Migrator{
		store:  store,
		keys:   BaseKeys,
		bus:    bus,
		logger: log,
	}
}

// Migrate runs the one-time copy for userID. A legacy value is copied
// verbatim only when no namespaced value exists yet; individual key
// failures are logged and skipped, so a partial migration is possible and
// the run stays idempotent by overwrite-skip. Once the per-user completion
// flag is set, later calls are no-ops reporting zero migrated keys.
func (m *Migrator) Migrate(userID string) Report {
	report := Report{TotalKeys: len(m.keys)}

	if m.done(userID) {
		return report
	}

	for _, base := range m.keys {
		legacy, ok := m.store.Get(base)
		if !ok {
			continue
		}
		if _, exists := m.store.Get(KeyFor(base, userID)); exists {
			continue
		}
		if err := m.store.Set(KeyFor(base, userID), legacy); err != nil {
			m.logger.Warn("skipping key during migration",
				zap.String("key", base),
				zap.String("user_id", userID),
				zap.Error(err))
			continue
		}
		report.Migrated++
	}

	if err := m.store.Set(KeyFor(keyMigrationDone, userID), "true"); err != nil {
		// Best effort; the next run will redo the (idempotent) copies.
		m.logger.Warn("failed to set migration flag",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	m.logger.Info("legacy key migration finished",
		zap.String("user_id", userID),
		zap.Int("migrated", report.Migrated),
		zap.Int("total_keys", report.TotalKeys))

	m.bus.Publish(events.Event{
		EventType: events.EventTypeDataMigrated,
		UserID:    userID,
		Details:   report,
	})

	return report
}

// ForceRemigrate clears the completion flag and runs Migrate again. Keys
// already namespaced are still skipped.
func (m *Migrator) ForceRemigrate(userID string) Report {
	m.store.Remove(KeyFor(keyMigrationDone, userID))
	return m.Migrate(userID)
}

func (m *Migrator) done(userID string) bool {
	v, ok := m.store.Get(KeyFor(keyMigrationDone, userID))
	return ok && v == "true"
}
