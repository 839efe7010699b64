package events

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bus is a synchronous fan-out Listener: everything published to it is
// dispatched inline to every matching subscriber. A panicking subscriber
// is isolated so it cannot break the tick loop or its peers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler // event type -> handle id -> handler
	all      map[string]Handler            // handlers registered for every event type
	logger   zerolog.Logger
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[string]Handler),
		all:      make(map[string]Handler),
		logger:   log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a handler for one event type and returns a handle
// for Unsubscribe.
func (b *Bus) Subscribe(eventType string, h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[string]Handler)
	}
	b.handlers[eventType][id] = h
	b.logger.Debug().Str("event_type", eventType).Str("handle", id).Msg("subscriber added")
	return id
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.all[id] = h
	b.logger.Debug().Str("handle", id).Msg("catch-all subscriber added")
	return id
}

// Unsubscribe removes the handler behind a handle. Unknown handles are
// ignored.
func (b *Bus) Unsubscribe(handle string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.all, handle)
	for _, byID := range b.handlers {
		delete(byID, handle)
	}
}

// Handle implements Listener by publishing the event.
func (b *Bus) Handle(e Event) { b.Publish(e) }

// Publish dispatches an event synchronously to all matching subscribers.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, h := range b.handlers[e.Type()] {
		b.dispatch(id, h, e)
	}
	for id, h := range b.all {
		b.dispatch(id, h, e)
	}
}

func (b *Bus) dispatch(id string, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("handle", id).
				Str("event_type", e.Type()).
				Interface("panic", r).
				Msg("subscriber panicked while handling event")
		}
	}()
	h(e)
}

// SubscriberCount reports how many handlers are registered, for tests and
// debugging.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.all)
	for _, byID := range b.handlers {
		n += len(byID)
	}
	return n
}
