package lifecycle

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/events"
	"github.com/pthm-cable/ethosim/world"
)

// carcassStartingBiomass is the biomass a fresh carcass starts with,
// simplified to a flat constant rather than modeling per-species body
// mass.
const carcassStartingBiomass = 40

// carcassDecayTicks is how long a carcass persists before its
// remaining biomass is fertilized back into the vegetation grid.
const carcassDecayTicks = 200

// AdvanceMetabolism runs once per tick: Hunger and Thirst rise by the
// entity's BehaviorConfig rates, Energy drains unless the entity is
// Resting, and Health is docked by StarveDamage while Hunger or Thirst
// sits at or above its Urgent threshold (§9 S6).
func AdvanceMetabolism(w *ecs.World) {
	filter := ecs.NewFilter4[components.Hunger, components.Thirst, components.Energy, components.BehaviorConfig](w)
	query := filter.Query()
	activeMap := ecs.NewMap1[components.ActiveAction](w)
	healthMap := ecs.NewMap1[components.Health](w)

	for query.Next() {
		e := query.Entity()
		hunger, thirst, energy, cfg := query.Get()

		hunger.Add(cfg.HungerRate)
		thirst.Add(cfg.ThirstRate)

		resting := activeMap.Has(e) && activeMap.Get(e).Kind == components.ActionRest
		if !resting {
			energy.Add(-cfg.EnergyDrainRate)
		}

		if !healthMap.Has(e) {
			continue
		}
		if hunger.Value >= cfg.HungerThresholdUrgent || thirst.Value >= cfg.ThirstThresholdUrgent {
			healthMap.Get(e).Add(-cfg.StarveDamage)
		}
	}
}

// ProcessDeaths collects every entity with Health <= 0, emits exactly
// one EntityDied event each, removes it from the spatial index, spawns
// a Carcass in its place, and destroys the entity — all in a second
// pass after the query, since ark forbids removing entities mid-query
// (grounded on the teacher's cleanupDead two-pass collect-then-remove
// shape).
func ProcessDeaths(w *ecs.World, spatial *world.SpatialIndex, bus *events.Bus) {
	filter := ecs.NewFilter1[components.Health](w)
	query := filter.Query()
	posMap := ecs.NewMap1[components.TilePosition](w)
	speciesMap := ecs.NewMap1[components.Species](w)

	type casualty struct {
		entity  ecs.Entity
		tile    components.Tile
		species components.Species
		hasTile bool
	}
	var dead []casualty
	for query.Next() {
		e := query.Entity()
		health := query.Get()
		if health.Value > 0 {
			continue
		}
		c := casualty{entity: e}
		if posMap.Has(e) {
			c.tile = posMap.Get(e).Tile
			c.hasTile = true
		}
		if speciesMap.Has(e) {
			c.species = *speciesMap.Get(e)
		}
		dead = append(dead, c)
	}

	carcassMap := ecs.NewMap2[components.TilePosition, components.Carcass](w)
	for _, c := range dead {
		bus.Emit(events.Event{Type: events.EntityDied, Entity: c.entity, Tile: c.tile, Species: c.species})
		spatial.Remove(c.entity)
		if c.hasTile {
			carcassMap.NewEntity(&components.TilePosition{Tile: c.tile}, &components.Carcass{
				Species:          c.species,
				RemainingBiomass: carcassStartingBiomass,
				DecayTicksLeft:   carcassDecayTicks,
			})
		}
		w.RemoveEntity(c.entity)
	}
}

// AdvanceCarcasses ticks every carcass's decay timer, fertilizing its
// tile's vegetation cell with its remaining biomass once the timer
// expires (§2 open question (b): carcass decay fertilizes vegetation,
// bounded by the cell's cap) and then destroying the carcass entity.
func AdvanceCarcasses(w *ecs.World, veg *world.VegetationGrid) {
	filter := ecs.NewFilter2[components.Carcass, components.TilePosition](w)
	query := filter.Query()

	var decayed []ecs.Entity
	for query.Next() {
		e := query.Entity()
		carcass, pos := query.Get()
		carcass.DecayTicksLeft--
		if carcass.DecayTicksLeft <= 0 {
			veg.Fertilize(pos.Tile, carcass.RemainingBiomass)
			decayed = append(decayed, e)
		}
	}
	for _, e := range decayed {
		w.RemoveEntity(e)
	}
}
