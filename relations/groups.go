package relations

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/world"
)

// RunFormation clusters nearby unaffiliated same-species entities
// carrying a due GroupFormationConfig into a GroupLeader/GroupMember
// structure (§4.10). Formation mechanics are species-agnostic: the
// config alone decides eligibility and sizing.
func RunFormation(w *ecs.World, spatial *world.SpatialIndex, tick uint64) {
	cfgFilter := ecs.NewFilter3[components.GroupFormationConfig, components.Species, components.TilePosition](w).
		Without(ecs.C[components.GroupLeader](), ecs.C[components.GroupMember]())
	query := cfgFilter.Query()

	type candidate struct {
		entity  ecs.Entity
		cfg     *components.GroupFormationConfig
		species components.Species
		tile    components.Tile
	}
	var due []candidate
	for query.Next() {
		e := query.Entity()
		cfg, species, pos := query.Get()
		if !cfg.Enabled || !cfg.DueForCheck() {
			continue
		}
		due = append(due, candidate{e, cfg, species, pos.Tile})
	}

	leaderMap := ecs.NewMap1[components.GroupLeader](w)
	memberMap := ecs.NewMap1[components.GroupMember](w)

	for _, c := range due {
		if leaderMap.Has(c.entity) || memberMap.Has(c.entity) {
			continue // joined an earlier candidate's cluster this pass
		}

		nearby := spatial.EntitiesInRadius(c.tile, c.cfg.FormationRadius, func(s components.Species) bool {
			return s == c.species
		})

		var members []ecs.Entity
		for _, other := range nearby {
			if other == c.entity || leaderMap.Has(other) || memberMap.Has(other) {
				continue
			}
			members = append(members, other)
			if len(members)+1 >= c.cfg.MaxSize {
				break
			}
		}

		if len(members)+1 < c.cfg.MinSize {
			continue
		}

		leaderMap.Add(c.entity, &components.GroupLeader{Members: members, FormedTick: tick, Type: c.cfg.Type})
		for _, m := range members {
			memberMap.Add(m, &components.GroupMember{Leader: c.entity, JoinedTick: tick, Type: c.cfg.Type})
		}
	}
}

// RunCohesion strips members that strayed past CohesionRadius from
// their leader, and dissolves groups that drop below MinSize (§4.10,
// S5). The cohesion check piggybacks on the same GroupFormationConfig
// as formation, read from the leader.
func RunCohesion(w *ecs.World, spatial *world.SpatialIndex) {
	leaderFilter := ecs.NewFilter2[components.GroupLeader, components.GroupFormationConfig](w)
	query := leaderFilter.Query()
	posMap := ecs.NewMap1[components.TilePosition](w)
	memberMap := ecs.NewMap1[components.GroupMember](w)

	type dissolution struct {
		leader      ecs.Entity
		strayed     []ecs.Entity
		dissolveAll bool
	}
	var results []dissolution

	for query.Next() {
		leader := query.Entity()
		rec, cfg := query.Get()
		if !cfg.DueForCheck() {
			continue
		}

		leaderTile := components.Tile{}
		if posMap.Has(leader) {
			leaderTile = posMap.Get(leader).Tile
		}

		var strayed []ecs.Entity
		var remaining int
		for _, member := range rec.Members {
			if !posMap.Has(member) {
				strayed = append(strayed, member)
				continue
			}
			if posMap.Get(member).Tile.ChebyshevDist(leaderTile) > cfg.CohesionRadius {
				strayed = append(strayed, member)
				continue
			}
			remaining++
		}

		dissolveAll := remaining+1 < cfg.MinSize
		results = append(results, dissolution{leader: leader, strayed: strayed, dissolveAll: dissolveAll})
	}

	leaderMap := ecs.NewMap1[components.GroupLeader](w)
	for _, d := range results {
		if d.dissolveAll {
			rec := leaderMap.Get(d.leader)
			for _, m := range rec.Members {
				if memberMap.Has(m) {
					memberMap.Remove(m)
				}
			}
			leaderMap.Remove(d.leader)
			if cfgMap := (ecs.NewMap1[components.GroupFormationConfig](w)); cfgMap.Has(d.leader) {
				cfgMap.Get(d.leader).StartCooldown()
			}
			continue
		}

		if len(d.strayed) == 0 {
			continue
		}
		strayedSet := make(map[ecs.Entity]struct{}, len(d.strayed))
		for _, m := range d.strayed {
			strayedSet[m] = struct{}{}
			if memberMap.Has(m) {
				memberMap.Remove(m)
			}
		}
		rec := leaderMap.Get(d.leader)
		kept := rec.Members[:0]
		for _, m := range rec.Members {
			if _, gone := strayedSet[m]; !gone {
				kept = append(kept, m)
			}
		}
		rec.Members = kept
	}
}

// PackHuntingBonus returns the Hunt-utility bonus a pack member earns
// from pack-mates already pursuing the same prey via ActiveHunter
// (§4.10, the "coordinated members" bonus named in the open
// questions). +0.05 per coordinated mate, capped at +0.2 total — the
// implementation's resolution of that open question (see DESIGN.md).
func PackHuntingBonus(w *ecs.World, e ecs.Entity, target ecs.Entity) float32 {
	memberMap := ecs.NewMap1[components.GroupMember](w)
	if !memberMap.Has(e) {
		return 0
	}
	rec := memberMap.Get(e)
	if rec.Type != components.GroupPack {
		return 0
	}
	leaderMap := ecs.NewMap1[components.GroupLeader](w)
	if !leaderMap.Has(rec.Leader) {
		return 0
	}
	hunterMap := ecs.NewMap1[components.ActiveHunter](w)
	coordinated := 0
	sameTarget := func(mate ecs.Entity) bool {
		return hunterMap.Has(mate) && hunterMap.Get(mate).Target == target
	}
	for _, m := range leaderMap.Get(rec.Leader).Members {
		if m != e && sameTarget(m) {
			coordinated++
		}
	}
	if rec.Leader != e && sameTarget(rec.Leader) {
		coordinated++
	}
	bonus := float32(coordinated) * 0.05
	if bonus > 0.2 {
		bonus = 0.2
	}
	return bonus
}

// HerdSafetyBonus dampens fear for herd members proportional to herd
// size: safety in numbers (§4.10).
func HerdSafetyBonus(w *ecs.World, e ecs.Entity) float32 {
	memberMap := ecs.NewMap1[components.GroupMember](w)
	if !memberMap.Has(e) {
		return 0
	}
	rec := memberMap.Get(e)
	if rec.Type != components.GroupHerd {
		return 0
	}
	leaderMap := ecs.NewMap1[components.GroupLeader](w)
	if !leaderMap.Has(rec.Leader) {
		return 0
	}
	size := float32(len(leaderMap.Get(rec.Leader).Members)) + 1
	dampen := size * 0.02
	if dampen > 0.3 {
		dampen = 0.3
	}
	return dampen
}

// WarrenDefenceBonus raises the alarm threshold for warren members:
// a nearby predator is less likely to trigger an individual's own fear
// response when den-mates can raise the alarm instead (§4.10).
func WarrenDefenceBonus(w *ecs.World, e ecs.Entity) float32 {
	memberMap := ecs.NewMap1[components.GroupMember](w)
	if !memberMap.Has(e) {
		return 0
	}
	rec := memberMap.Get(e)
	if rec.Type != components.GroupWarren {
		return 0
	}
	return 0.1
}
