// Package events implements the single-tick typed event bus (C12):
// producers emit during a tick and the bus is drained once at the end of
// it. Events are not persistent state — each drained batch is handed to
// its consumers and then dropped.
package events

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

// Type identifies the kind of event carried by an Event.
type Type uint8

const (
	EntityDied Type = iota
	ActionCompleted
	PathCompleted
	StatCritical
)

// Event is a single tick-scoped notification. Only the fields relevant
// to Type are populated; the rest are zero.
type Event struct {
	Type   Type
	Entity ecs.Entity

	// EntityDied
	Tile    components.Tile
	Species components.Species

	// ActionCompleted / PathCompleted
	Success bool

	// StatCritical
	Reason components.ReplanReason
}

// Bus accumulates events emitted during a tick and is drained once per
// tick, in the scheduler's Cleanup phase. It is not safe for concurrent emission;
// the scheduler serializes the phase that emits into it.
type Bus struct {
	pending []Event
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Emit appends an event for this tick's reactors to observe.
func (b *Bus) Emit(e Event) {
	b.pending = append(b.pending, e)
}

// Drain returns every event emitted since the last Drain and clears the
// bus. Called once per tick, after all emitting phases have run and
// before the next tick's emitting phases begin.
func (b *Bus) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}

// OfType filters a drained batch down to one event kind, a convenience
// for reactors that only care about a single Type.
func OfType(batch []Event, t Type) []Event {
	var out []Event
	for _, e := range batch {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
