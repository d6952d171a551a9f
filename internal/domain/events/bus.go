package events

import (
	"sync"
	"time"
)

// Bus is the publish/subscribe interface injected into services. It replaces
// ambient global events with an explicit dependency so consumers can be
// wired (and tested) without shared mutable globals.
type Bus interface {
	Publish(event Event)
	// Subscribe registers a handler for the given event type. An empty
	// eventType subscribes to all events. The returned func removes the
	// subscription.
	Subscribe(eventType string, handler func(Event)) (unsubscribe func())
}

type subscription struct {
	id        int
	eventType string
	handler   func(Event)
}

// MemoryBus is an in-process Bus. Handlers run synchronously on the
// publishing goroutine, matching the single-threaded event-driven model of
// the storage layer.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

func (b *MemoryBus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.eventType == "" || sub.eventType == event.EventType {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

func (b *MemoryBus) Subscribe(eventType string, handler func(Event)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, eventType: eventType, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}
