// Package events carries the simulation's notification surface: typed
// events published by cities and the simulation, a synchronous bus with
// subscriber registry, and a zerolog subscriber for structured logs.
package events

import "time"

// Event is the base interface for all simulation events.
type Event interface {
	// Type returns the event type string for filtering and logging.
	Type() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
	// CityName returns the city this event belongs to, empty for
	// simulation-level events.
	CityName() string
}

// BaseEvent provides the common fields of all events.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	City      string    `json:"city"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) CityName() string     { return e.City }

// Listener receives events synchronously. Implementations must not block;
// the tick loop publishes inline.
type Listener interface {
	Handle(Event)
}

// Nop is a Listener that drops everything. It is the default listener of
// cities and simulations constructed without one.
type Nop struct{}

func (Nop) Handle(Event) {}

// Handler adapts a function to the Listener interface.
type Handler func(Event)

func (h Handler) Handle(e Event) { h(e) }
