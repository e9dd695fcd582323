// Package relations implements the bidirectional relationship pairs
// and group formation/cohesion mechanics (C10): hunting, mating, and
// parent/child pairs are created and removed atomically, and a periodic
// sweep removes any half whose counterpart entity no longer exists.
package relations

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

// EstablishHunt atomically inserts both halves of a hunting pair.
func EstablishHunt(w *ecs.World, predator, prey ecs.Entity, tick uint64) {
	ecs.NewMap1[components.ActiveHunter](w).Add(predator, &components.ActiveHunter{Target: prey, StartedTick: tick})
	ecs.NewMap1[components.HuntingTarget](w).Add(prey, &components.HuntingTarget{Predator: predator, StartedTick: tick})
}

// ClearHunt atomically removes both halves of a hunting pair.
func ClearHunt(w *ecs.World, predator, prey ecs.Entity) {
	if m := ecs.NewMap1[components.ActiveHunter](w); m.Has(predator) {
		m.Remove(predator)
	}
	if m := ecs.NewMap1[components.HuntingTarget](w); m.Has(prey) {
		m.Remove(prey)
	}
}

// EstablishMate atomically inserts both halves of a mating pair.
func EstablishMate(w *ecs.World, suitor, target ecs.Entity, meetingTile components.Tile, tick uint64) {
	ecs.NewMap1[components.ActiveMate](w).Add(suitor, &components.ActiveMate{Partner: target, MeetingTile: meetingTile, StartedTick: tick})
	ecs.NewMap1[components.MatingTarget](w).Add(target, &components.MatingTarget{Suitor: suitor, MeetingTile: meetingTile, StartedTick: tick})
}

// ClearMate atomically removes both halves of a mating pair.
func ClearMate(w *ecs.World, suitor, target ecs.Entity) {
	if m := ecs.NewMap1[components.ActiveMate](w); m.Has(suitor) {
		m.Remove(suitor)
	}
	if m := ecs.NewMap1[components.MatingTarget](w); m.Has(target) {
		m.Remove(target)
	}
}

// EstablishParentChild records a birth: the parent's ParentOf gains the
// child, the child gains a ChildOf pointing back. The parent does not
// own the child's lifetime (§4.10) — this is a lookup relation only.
func EstablishParentChild(w *ecs.World, parent, child ecs.Entity, tick uint64) {
	parentMap := ecs.NewMap1[components.ParentOf](w)
	if parentMap.Has(parent) {
		rec := parentMap.Get(parent)
		rec.Children = append(rec.Children, child)
	} else {
		parentMap.Add(parent, &components.ParentOf{Children: []ecs.Entity{child}, FirstBirthTick: tick})
	}
	ecs.NewMap1[components.ChildOf](w).Add(child, &components.ChildOf{Parent: parent, BornTick: tick})
}

// SweepStalePairs runs the periodic (~10 tick) consistency pass: any
// pair half whose counterpart entity no longer exists is removed, so
// dangling references never linger past the bounded cleanup window
// (§4.10, invariant 6).
func SweepStalePairs(w *ecs.World) {
	sweepHunters(w)
	sweepHuntingTargets(w)
	sweepMates(w)
	sweepMatingTargets(w)
	sweepChildren(w)
}

func sweepHunters(w *ecs.World) {
	filter := ecs.NewFilter1[components.ActiveHunter](w)
	query := filter.Query()
	preyMap := ecs.NewMap1[components.HuntingTarget](w)

	var stale []ecs.Entity
	for query.Next() {
		e := query.Entity()
		rec := query.Get()
		if !preyMap.Has(rec.Target) {
			stale = append(stale, e)
		}
	}
	m := ecs.NewMap1[components.ActiveHunter](w)
	for _, e := range stale {
		m.Remove(e)
	}
}

func sweepHuntingTargets(w *ecs.World) {
	filter := ecs.NewFilter1[components.HuntingTarget](w)
	query := filter.Query()
	hunterMap := ecs.NewMap1[components.ActiveHunter](w)

	var stale []ecs.Entity
	for query.Next() {
		e := query.Entity()
		rec := query.Get()
		if !hunterMap.Has(rec.Predator) {
			stale = append(stale, e)
		}
	}
	m := ecs.NewMap1[components.HuntingTarget](w)
	for _, e := range stale {
		m.Remove(e)
	}
}

func sweepMates(w *ecs.World) {
	filter := ecs.NewFilter1[components.ActiveMate](w)
	query := filter.Query()
	targetMap := ecs.NewMap1[components.MatingTarget](w)

	var stale []ecs.Entity
	for query.Next() {
		e := query.Entity()
		rec := query.Get()
		if !targetMap.Has(rec.Partner) {
			stale = append(stale, e)
		}
	}
	m := ecs.NewMap1[components.ActiveMate](w)
	for _, e := range stale {
		m.Remove(e)
	}
}

func sweepMatingTargets(w *ecs.World) {
	filter := ecs.NewFilter1[components.MatingTarget](w)
	query := filter.Query()
	suitorMap := ecs.NewMap1[components.ActiveMate](w)

	var stale []ecs.Entity
	for query.Next() {
		e := query.Entity()
		rec := query.Get()
		if !suitorMap.Has(rec.Suitor) {
			stale = append(stale, e)
		}
	}
	m := ecs.NewMap1[components.MatingTarget](w)
	for _, e := range stale {
		m.Remove(e)
	}
}

// sweepChildren drops ChildOf (but never ParentOf — the parent's birth
// record is historical and survives the child's death) for children
// whose parent no longer exists.
func sweepChildren(w *ecs.World) {
	filter := ecs.NewFilter1[components.ChildOf](w)
	query := filter.Query()
	parentMap := ecs.NewMap1[components.ParentOf](w)

	var stale []ecs.Entity
	for query.Next() {
		e := query.Entity()
		rec := query.Get()
		if !parentMap.Has(rec.Parent) {
			stale = append(stale, e)
		}
	}
	m := ecs.NewMap1[components.ChildOf](w)
	for _, e := range stale {
		m.Remove(e)
	}
}
