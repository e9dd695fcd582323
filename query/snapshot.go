// Package query builds read-only views over a running sim.Runtime for
// external consumers (an HTTP layer, a CLI inspector, offline CSV
// export) — adapted from the teacher's telemetry.Snapshot, restyled
// from a replay save-file format into the external query surface named
// by this engine's interface contract.
package query

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/sim"
)

// EntitySummary holds one entity's externally-visible state: identity,
// position, core stats, and what it's currently doing.
type EntitySummary struct {
	ID      uint32
	Species string

	TileX, TileY int32

	Hunger float32
	Thirst float32
	Energy float32
	Health float32

	ActionKind components.ActionKind
	HasAction  bool

	GroupLeader bool
	GroupMember bool
}

// HealthSummary reports the runtime's recent operational health:
// tick-timing anomalies and invariant violations surfaced by the
// periodic validator sweep.
type HealthSummary struct {
	Tick uint64

	RecentAlerts []string

	AvgTickMicros int64
	MaxTickMicros int64
	TicksPerSec   float64
}

// Snapshot is a point-in-time, read-only view of a Runtime suitable
// for external serialization (§6).
type Snapshot struct {
	Tick       uint64
	Population int
	Entities   []EntitySummary
	Health     HealthSummary
}

// BuildSnapshot samples r's current world state into a Snapshot. It
// never mutates r; safe to call between ticks or (if the caller
// tolerates a half-advanced tick) mid-step.
func BuildSnapshot(r *sim.Runtime) Snapshot {
	filter := ecs.NewFilter4[components.Species, components.TilePosition, components.Hunger, components.Thirst](r.World)
	query := filter.Query()

	energyMap := ecs.NewMap1[components.Energy](r.World)
	healthMap := ecs.NewMap1[components.Health](r.World)
	activeMap := ecs.NewMap1[components.ActiveAction](r.World)
	leaderMap := ecs.NewMap1[components.GroupLeader](r.World)
	memberMap := ecs.NewMap1[components.GroupMember](r.World)

	var entities []EntitySummary
	for query.Next() {
		e := query.Entity()
		species, pos, hunger, thirst := query.Get()

		summary := EntitySummary{
			ID:          uint32(e.ID()),
			Species:     species.String(),
			TileX:       pos.Tile.X,
			TileY:       pos.Tile.Y,
			Hunger:      hunger.Value,
			Thirst:      thirst.Value,
			GroupLeader: leaderMap.Has(e),
			GroupMember: memberMap.Has(e),
		}
		if energyMap.Has(e) {
			summary.Energy = energyMap.Get(e).Value
		}
		if healthMap.Has(e) {
			summary.Health = healthMap.Get(e).Value
		}
		if activeMap.Has(e) {
			summary.HasAction = true
			summary.ActionKind = activeMap.Get(e).Kind
		}
		entities = append(entities, summary)
	}

	alerts := r.HealthMonitor.Alerts()
	recent := make([]string, 0, len(alerts))
	for _, a := range alerts {
		recent = append(recent, a.Kind+": "+a.Detail)
	}

	perfStats := r.Metrics.Stats()
	health := HealthSummary{
		Tick:          r.Tick,
		RecentAlerts:  recent,
		AvgTickMicros: perfStats.AvgTickDuration.Microseconds(),
		MaxTickMicros: perfStats.MaxTickDuration.Microseconds(),
		TicksPerSec:   perfStats.TicksPerSecond,
	}

	return Snapshot{
		Tick:       r.Tick,
		Population: len(entities),
		Entities:   entities,
		Health:     health,
	}
}
