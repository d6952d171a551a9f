package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published on the bus
const (
	EventTypeActivityLogged     = "activity_logged"
	EventTypeChallengeCompleted = "challenge_completed"
	EventTypeBadgeEarned        = "badge_earned"
	EventTypeDataMigrated       = "data_migrated"
	EventTypeDayRollover        = "day_rollover"
	EventTypeCacheInvalidate    = "cache_invalidate"
)

// Event represents a change notification consumed by dashboard observers.
// Services publish one after every persisted mutation so observers reload
// rather than trusting cached state.
type Event struct {
	EventType string      `json:"event_type"`
	UserID    string      `json:"user_id"`
	EntityID  uuid.UUID   `json:"entity_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}
