package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBusDeliversToMatchingSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var activity []Event
	var all []Event

	bus.Subscribe(EventTypeActivityLogged, func(e Event) { activity = append(activity, e) })
	bus.Subscribe("", func(e Event) { all = append(all, e) })

	bus.Publish(Event{EventType: EventTypeActivityLogged, UserID: "u1"})
	bus.Publish(Event{EventType: EventTypeBadgeEarned, UserID: "u1"})

	assert.Len(t, activity, 1)
	assert.Equal(t, EventTypeActivityLogged, activity[0].EventType)
	assert.Len(t, all, 2)
	assert.False(t, all[0].Timestamp.IsZero(), "publish should stamp missing timestamps")
}

func TestMemoryBusUnsubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var got int
	unsubscribe := bus.Subscribe(EventTypeActivityLogged, func(Event) { got++ })

	bus.Publish(Event{EventType: EventTypeActivityLogged})
	unsubscribe()
	bus.Publish(Event{EventType: EventTypeActivityLogged})

	assert.Equal(t, 1, got)
}
