// Package lifecycle implements the reproduction and death systems
// (C11): pregnancy/cooldown countdowns, birth spawning, and starvation/
// health-driven despawn with carcass creation.
package lifecycle

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/relations"
)

// SpawnFunc creates a new entity of species at tile, attaching the full
// required-component bundle (species marker, TilePosition, stats,
// BehaviorConfig, ReproductionConfig — §4 required-component contract).
// Supplied by sim.Runtime, which alone knows each species' spawn
// defaults; lifecycle only decides *when* and *where* to spawn.
type SpawnFunc func(w *ecs.World, species components.Species, tile components.Tile) ecs.Entity

// UpdateWellFedStreak runs once per tick: every entity with both Hunger
// and ReproductionConfig gets its WellFedStreak incremented while
// hunger stays below SatiatedHunger, reset to zero otherwise (§4.10
// reproduction eligibility gate).
func UpdateWellFedStreak(w *ecs.World) {
	filter := ecs.NewFilter2[components.Hunger, components.ReproductionConfig](w)
	query := filter.Query()

	type update struct {
		entity    ecs.Entity
		satiated  bool
	}
	var updates []update
	for query.Next() {
		e := query.Entity()
		hunger, cfg := query.Get()
		updates = append(updates, update{entity: e, satiated: hunger.Value < cfg.SatiatedHunger})
	}

	streakMap := ecs.NewMap1[components.WellFedStreak](w)
	for _, u := range updates {
		if streakMap.Has(u.entity) {
			streak := streakMap.Get(u.entity)
			if u.satiated {
				streak.Ticks++
			} else {
				streak.Ticks = 0
			}
			continue
		}
		if u.satiated {
			streakMap.Add(u.entity, &components.WellFedStreak{Ticks: 1})
		} else {
			streakMap.Add(u.entity, &components.WellFedStreak{Ticks: 0})
		}
	}
}

// AdvanceCooldowns decrements every ReproductionCooldown and removes it
// once it reaches zero, re-opening mating eligibility.
func AdvanceCooldowns(w *ecs.World) {
	filter := ecs.NewFilter1[components.ReproductionCooldown](w)
	query := filter.Query()

	var expired []ecs.Entity
	for query.Next() {
		e := query.Entity()
		cd := query.Get()
		cd.TicksRemaining--
		if cd.TicksRemaining <= 0 {
			expired = append(expired, e)
		}
	}

	m := ecs.NewMap1[components.ReproductionCooldown](w)
	for _, e := range expired {
		m.Remove(e)
	}
}

// AdvancePregnancies decrements every Pregnancy's timer; at zero it
// spawns the litter via spawn, adjacent to the mother, establishes the
// parent/child relation, and removes the Pregnancy component.
func AdvancePregnancies(w *ecs.World, spawn SpawnFunc, tick uint64) {
	filter := ecs.NewFilter2[components.Pregnancy, components.Species](w)
	query := filter.Query()
	posMap := ecs.NewMap1[components.TilePosition](w)
	repMap := ecs.NewMap1[components.ReproductionConfig](w)

	type due struct {
		mother  ecs.Entity
		species components.Species
		litter  int32
		tile    components.Tile
	}
	var dueList []due
	for query.Next() {
		e := query.Entity()
		preg, species := query.Get()
		preg.TicksRemaining--
		if preg.TicksRemaining > 0 {
			continue
		}
		litter := int32(1)
		if repMap.Has(e) {
			litter = repMap.Get(e).LitterSize
		}
		tile := components.Tile{}
		if posMap.Has(e) {
			tile = posMap.Get(e).Tile
		}
		dueList = append(dueList, due{mother: e, species: *species, litter: litter, tile: tile})
	}

	pregMap := ecs.NewMap1[components.Pregnancy](w)
	offset := 0
	for _, d := range dueList {
		for i := int32(0); i < d.litter; i++ {
			childTile := birthTileOffset(d.tile, offset)
			offset++
			child := spawn(w, d.species, childTile)
			relations.EstablishParentChild(w, d.mother, child, tick)
		}
		pregMap.Remove(d.mother)
	}
}

// birthTileOffset scatters littermates across the 8 tiles surrounding
// the mother so they don't all spawn stacked on one tile.
func birthTileOffset(center components.Tile, index int) components.Tile {
	offsets := [8][2]int32{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	o := offsets[index%len(offsets)]
	return components.Tile{X: center.X + o[0], Y: center.Y + o[1]}
}
