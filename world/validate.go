package world

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

// Violation describes a single invariant breach found by ValidateEntities.
type Violation struct {
	Entity ecs.Entity
	Detail string
}

// ValidateEntities runs the periodic invariant sweep (C2/§7): stat
// bounds, spatial-index/position agreement, and relationship-pair
// symmetry. It never mutates state, only reports — callers decide
// whether a violation is merely logged or corrected.
func ValidateEntities(w *ecs.World, idx *SpatialIndex) []Violation {
	var out []Violation

	out = append(out, validateStatBounds(w)...)
	out = append(out, validateSpatialAgreement(w, idx)...)
	out = append(out, validateHuntingPairs(w)...)
	out = append(out, validateMatingPairs(w)...)
	out = append(out, validateGroupMembership(w)...)

	return out
}

func validateStatBounds(w *ecs.World) []Violation {
	var out []Violation
	filter := ecs.NewFilter4[components.Hunger, components.Thirst, components.Energy, components.Health](w)
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		hunger, thirst, energy, health := query.Get()
		if hunger.Value < 0 || hunger.Value > 100 {
			out = append(out, Violation{e, fmt.Sprintf("hunger out of bounds: %v", hunger.Value)})
		}
		if thirst.Value < 0 || thirst.Value > 100 {
			out = append(out, Violation{e, fmt.Sprintf("thirst out of bounds: %v", thirst.Value)})
		}
		if energy.Value < 0 || energy.Value > 100 {
			out = append(out, Violation{e, fmt.Sprintf("energy out of bounds: %v", energy.Value)})
		}
		if health.Value < 0 || health.Value > 100 {
			out = append(out, Violation{e, fmt.Sprintf("health out of bounds: %v", health.Value)})
		}
	}
	return out
}

func validateSpatialAgreement(w *ecs.World, idx *SpatialIndex) []Violation {
	var out []Violation
	filter := ecs.NewFilter1[components.TilePosition](w)
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		pos := query.Get()
		chunk, tracked := idx.ChunkOf(e)
		if !tracked {
			out = append(out, Violation{e, "position exists but entity missing from spatial index"})
			continue
		}
		if chunk != pos.Tile.ChunkOf() {
			out = append(out, Violation{e, fmt.Sprintf("spatial index chunk %v disagrees with position chunk %v", chunk, pos.Tile.ChunkOf())})
		}
	}
	return out
}

func validateHuntingPairs(w *ecs.World) []Violation {
	var out []Violation
	filter := ecs.NewFilter1[components.ActiveHunter](w)
	targetMap := ecs.NewMap1[components.HuntingTarget](w)

	query := filter.Query()
	for query.Next() {
		hunter := query.Entity()
		active := query.Get()

		if !targetMap.Has(active.Target) {
			out = append(out, Violation{hunter, fmt.Sprintf("ActiveHunter targets %v which has no HuntingTarget back-reference", active.Target)})
			continue
		}
		back := targetMap.Get(active.Target)
		if back.Predator != hunter {
			out = append(out, Violation{hunter, fmt.Sprintf("HuntingTarget.Predator %v does not match hunter %v", back.Predator, hunter)})
		}
	}
	return out
}

func validateMatingPairs(w *ecs.World) []Violation {
	var out []Violation
	filter := ecs.NewFilter1[components.ActiveMate](w)
	targetMap := ecs.NewMap1[components.MatingTarget](w)

	query := filter.Query()
	for query.Next() {
		suitor := query.Entity()
		active := query.Get()

		if !targetMap.Has(active.Partner) {
			out = append(out, Violation{suitor, fmt.Sprintf("ActiveMate targets %v which has no MatingTarget back-reference", active.Partner)})
			continue
		}
		back := targetMap.Get(active.Partner)
		if back.Suitor != suitor {
			out = append(out, Violation{suitor, fmt.Sprintf("MatingTarget.Suitor %v does not match suitor %v", back.Suitor, suitor)})
		}
	}
	return out
}

func validateGroupMembership(w *ecs.World) []Violation {
	var out []Violation
	filter := ecs.NewFilter1[components.GroupLeader](w)
	memberMap := ecs.NewMap1[components.GroupMember](w)

	query := filter.Query()
	for query.Next() {
		leader := query.Entity()
		group := query.Get()

		for _, member := range group.Members {
			if !memberMap.Has(member) {
				out = append(out, Violation{leader, fmt.Sprintf("member %v has no GroupMember component", member)})
				continue
			}
			back := memberMap.Get(member)
			if back.Leader != leader {
				out = append(out, Violation{leader, fmt.Sprintf("member %v GroupMember.Leader %v does not match", member, back.Leader)})
			}
		}
	}
	return out
}
