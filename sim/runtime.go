// Package sim aggregates every subsystem into a single runtime: the
// ECS world, the substrate resources (grid, vegetation, spatial index),
// the think/path queues, and the event bus, driven once per tick by a
// fixed-timestep accumulator and a phased scheduler.
package sim

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/config"
	"github.com/pthm-cable/ethosim/events"
	"github.com/pthm-cable/ethosim/pathing"
	"github.com/pthm-cable/ethosim/telemetry"
	"github.com/pthm-cable/ethosim/think"
	"github.com/pthm-cable/ethosim/traits"
	"github.com/pthm-cable/ethosim/world"
)

// Speed controls the accumulator's real-time-to-tick conversion (§4.1):
// Multiplier scales ticks-per-second, Paused freezes the simulation
// entirely regardless of Multiplier.
type Speed struct {
	Multiplier float64
	Paused     bool
}

// Runtime holds every process-wide resource as a plain field, mirroring
// the teacher's Game struct rather than registering them as ark
// resources — only Runtime.Step's phases and their callers reach into these
// fields directly.
type Runtime struct {
	World       *ecs.World
	CachedWorld *world.CachedWorld
	Grid        *world.Grid
	Vegetation  *world.VegetationGrid
	Spatial     *world.SpatialIndex
	ThinkQueue  *think.Queue
	PathQueue   *pathing.Queue
	Bus         *events.Bus
	Planner     *think.Planner
	Rand        *rand.Rand

	Metrics       *telemetry.PerfCollector
	Events        *telemetry.Collector
	HealthMonitor *telemetry.HealthMonitor
	Output        *telemetry.OutputManager

	Tick  uint64
	Speed Speed

	accumulator Accumulator

	// idleSince tracks, per entity, the tick its ActiveAction last
	// cleared, feeding think.RunAggressiveIdleFallback. Maintained by
	// the scheduler's Planning phase; SpawnSpecies seeds new entities.
	idleSince map[ecs.Entity]uint64

	// lastEventBatch holds the events drained at the end of the
	// previous tick's Cleanup phase, consumed by this tick's Planning
	// phase ActionCompleted trigger (the bus's single-tick contract:
	// emit this tick, drain before next tick's emitters run).
	lastEventBatch []events.Event
}

// defaultPerfWindow is one minute of ticks at the 10Hz heartbeat.
const defaultPerfWindow = 600

// NewRuntime builds a runtime over a loaded world pack, wiring the
// substrate resources, queues, and planner together the way
// NewGameWithOptions assembles the teacher's Game.
func NewRuntime(cw *world.CachedWorld, seed int64) *Runtime {
	cfg := config.Cfg()

	w := ecs.NewWorld()
	grid := world.NewGrid(cw)
	veg := world.NewVegetationGrid(
		cfg.Vegetation.CellCap,
		cfg.Vegetation.RegrowthAmount,
		cfg.Vegetation.PressureDecay,
		cfg.Vegetation.RegrowthTicks,
	)
	spatial := world.NewSpatialIndex()
	rng := rand.New(rand.NewSource(seed))

	r := &Runtime{
		World:       w,
		CachedWorld: cw,
		Grid:        grid,
		Vegetation:  veg,
		Spatial:     spatial,
		ThinkQueue:  think.NewQueue(),
		PathQueue:   pathing.NewQueue(),
		Bus:         events.NewBus(),
		Rand:        rng,
		Metrics:       telemetry.NewPerfCollector(defaultPerfWindow),
		Events:        telemetry.NewCollector(),
		HealthMonitor: telemetry.NewHealthMonitor(),
		Speed:         Speed{Multiplier: cfg.Tick.DefaultSpeedMultiplier},
		idleSince:     make(map[ecs.Entity]uint64),
	}
	r.Planner = think.NewPlanner(grid, veg, spatial, rng)
	return r
}

// SetOutput wires a telemetry.OutputManager so flushed telemetry/perf
// windows are written to CSV; pass nil to disable output.
func (r *Runtime) SetOutput(out *telemetry.OutputManager) {
	r.Output = out
}

// SetSpeed changes the accumulator's ticks-per-second multiplier
// (§6 runtime controls).
func (r *Runtime) SetSpeed(multiplier float64) {
	r.Speed.Multiplier = multiplier
}

// Pause freezes tick advancement without losing accumulated time.
func (r *Runtime) Pause() {
	r.Speed.Paused = true
}

// Resume un-freezes tick advancement.
func (r *Runtime) Resume() {
	r.Speed.Paused = false
}

// Run folds elapsed wall-clock time into the runtime's accumulator and
// executes however many whole ticks are now due, returning that count.
// This is the real-time-paced counterpart to the teacher's
// Game.Update — "run N steps this frame" generalized to "run however
// many ticks this much real time is worth" — for an embedding host
// (a GUI, a paced server loop) that drives the simulation off a
// wall-clock frame callback rather than a tight benchmarking loop.
func (r *Runtime) Run(elapsed time.Duration) int {
	ticks := r.accumulator.Advance(elapsed, r.Speed)
	for i := 0; i < ticks; i++ {
		r.Step()
	}
	return ticks
}

// movementSpeedFor derives MovementSpeed.TicksPerTile from a species'
// size class, one tick faster for species carrying the Speed trait,
// floored at one tick per tile.
func movementSpeedFor(profile traits.Profile) int32 {
	base := int32(3)
	switch profile.SizeClass {
	case traits.SizeSmall:
		base = 2
	case traits.SizeMedium:
		base = 3
	case traits.SizeLarge:
		base = 4
	}
	if profile.Traits.Has(traits.Speed) {
		base--
	}
	if base < 1 {
		base = 1
	}
	return base
}

// groupTypeFor returns the species-specific group archetype and
// whether the species forms groups at all (§4.11: Herding-trait
// species only).
func groupTypeFor(profile traits.Profile, species components.Species) (components.GroupType, bool) {
	if !profile.Traits.Has(traits.Herding) {
		return 0, false
	}
	switch species {
	case components.Wolf:
		return components.GroupPack, true
	case components.Raccoon:
		return components.GroupWarren, true
	default:
		return components.GroupHerd, true
	}
}

// groupFormationConfigFor builds the formation tuning for a
// Herding-trait species, scaled roughly by size class: larger species
// form smaller, more widely spaced groups.
func groupFormationConfigFor(groupType components.GroupType, profile traits.Profile) components.GroupFormationConfig {
	cfg := components.GroupFormationConfig{
		Enabled:                  true,
		Type:                     groupType,
		MinSize:                  3,
		MaxSize:                  8,
		FormationRadius:          6,
		CohesionRadius:           10,
		CheckIntervalTicks:       30,
		ReformationCooldownTicks: 100,
	}
	switch profile.SizeClass {
	case traits.SizeLarge:
		cfg.MinSize = 2
		cfg.MaxSize = 5
		cfg.FormationRadius = 10
		cfg.CohesionRadius = 16
	case traits.SizeSmall:
		cfg.MinSize = 4
		cfg.MaxSize = 12
	}
	return cfg
}

// initialStats are the stat values every freshly spawned entity starts
// with: comfortably fed and rested, so newborns don't immediately
// trigger an Urgent replan.
const (
	initialHunger = 20
	initialThirst = 20
	initialEnergy = 80
	initialHealth = 100
)

// SpawnSpecies creates a fully-formed entity of species at tile,
// attaching the required-component bundle (§4 data model) plus the
// species-conditional FearState/GroupFormationConfig, and registers it
// with the spatial index. Components are added one mapper at a time
// rather than through a single large NewEntityN bundle, matching the
// mintEntity pattern used throughout the lifecycle tests.
func (r *Runtime) SpawnSpecies(species components.Species, tile components.Tile) ecs.Entity {
	cfg := config.Cfg()
	profile := traits.ProfileFor(species.String())

	e := ecs.NewMap1[components.Species](r.World).NewEntity(&species)

	ecs.NewMap1[components.TilePosition](r.World).Add(e, &components.TilePosition{Tile: tile})
	ecs.NewMap1[components.MovementSpeed](r.World).Add(e, &components.MovementSpeed{
		TicksPerTile: movementSpeedFor(profile),
	})
	ecs.NewMap1[components.MovementState](r.World).Add(e, &components.MovementState{Kind: components.Idle})

	ecs.NewMap1[components.Hunger](r.World).Add(e, &components.Hunger{Value: initialHunger})
	ecs.NewMap1[components.Thirst](r.World).Add(e, &components.Thirst{Value: initialThirst})
	ecs.NewMap1[components.Energy](r.World).Add(e, &components.Energy{Value: initialEnergy})
	ecs.NewMap1[components.Health](r.World).Add(e, &components.Health{Value: initialHealth})
	ecs.NewMap1[components.ThresholdState](r.World).Add(e, &components.ThresholdState{})

	behavior := cfg.BehaviorFor(species.String())
	ecs.NewMap1[components.BehaviorConfig](r.World).Add(e, &behavior)

	reproduction := cfg.ReproductionFor(species.String())
	ecs.NewMap1[components.ReproductionConfig](r.World).Add(e, &reproduction)

	sex := components.Female
	if r.Rand.Intn(2) == 1 {
		sex = components.Male
	}
	ecs.NewMap1[components.Sex](r.World).Add(e, &sex)

	if profile.Traits.Has(traits.PreyEyes) {
		ecs.NewMap1[components.FearState](r.World).Add(e, &components.FearState{})
	}

	if groupType, ok := groupTypeFor(profile, species); ok {
		formation := groupFormationConfigFor(groupType, profile)
		ecs.NewMap1[components.GroupFormationConfig](r.World).Add(e, &formation)
	}

	r.Spatial.Insert(e, tile, species)
	r.idleSince[e] = r.Tick
	return e
}

// spawnAdjacent is the lifecycle.SpawnFunc-compatible closure: the
// pregnancy system only knows *when* and *where* to spawn, never the
// per-species default bundle, which stays Runtime's responsibility.
func (r *Runtime) spawnAdjacent(_ *ecs.World, species components.Species, tile components.Tile) ecs.Entity {
	e := r.SpawnSpecies(species, tile)
	r.Events.RecordBirth(species)
	return e
}

// SeedPopulation spawns cfg.Spawn's configured count of every species
// scattered within its radius of its center, the headless equivalent of
// the teacher's spawnInitialPopulation.
func (r *Runtime) SeedPopulation() {
	cfg := config.Cfg()
	for _, species := range components.AllSpecies {
		entry, ok := cfg.Spawn.Species[species.String()]
		if !ok || entry.Count <= 0 {
			continue
		}
		for i := 0; i < entry.Count; i++ {
			tile := r.randomTileNear(entry.CenterX, entry.CenterY, entry.Radius)
			r.SpawnSpecies(species, tile)
		}
	}
}

func (r *Runtime) randomTileNear(cx, cy, radius int32) components.Tile {
	if radius <= 0 {
		return components.Tile{X: cx, Y: cy}
	}
	dx := r.Rand.Int31n(2*radius+1) - radius
	dy := r.Rand.Int31n(2*radius+1) - radius
	return components.Tile{X: cx + dx, Y: cy + dy}
}
