package relations

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func mintEntity(w *ecs.World, species components.Species) ecs.Entity {
	return ecs.NewMap1[components.Species](w).NewEntity(&species)
}

func TestEstablishAndClearHunt(t *testing.T) {
	w := ecs.NewWorld()
	predator := mintEntity(w, components.Wolf)
	prey := mintEntity(w, components.Rabbit)

	EstablishHunt(w, predator, prey, 1)
	if !ecs.NewMap1[components.ActiveHunter](w).Has(predator) {
		t.Fatalf("expected ActiveHunter on predator")
	}
	if !ecs.NewMap1[components.HuntingTarget](w).Has(prey) {
		t.Fatalf("expected HuntingTarget on prey")
	}

	ClearHunt(w, predator, prey)
	if ecs.NewMap1[components.ActiveHunter](w).Has(predator) {
		t.Fatalf("expected ActiveHunter removed")
	}
	if ecs.NewMap1[components.HuntingTarget](w).Has(prey) {
		t.Fatalf("expected HuntingTarget removed")
	}
}

func TestSweepStalePairsRemovesDanglingHunterHalf(t *testing.T) {
	w := ecs.NewWorld()
	predator := mintEntity(w, components.Wolf)
	prey := mintEntity(w, components.Rabbit)
	EstablishHunt(w, predator, prey, 1)

	// Simulate the prey dying without a paired clear: drop only its half.
	ecs.NewMap1[components.HuntingTarget](w).Remove(prey)

	SweepStalePairs(w)

	if ecs.NewMap1[components.ActiveHunter](w).Has(predator) {
		t.Fatalf("expected dangling ActiveHunter swept")
	}
}

func TestSweepStalePairsLeavesIntactPairsAlone(t *testing.T) {
	w := ecs.NewWorld()
	suitor := mintEntity(w, components.Rabbit)
	target := mintEntity(w, components.Rabbit)
	EstablishMate(w, suitor, target, components.Tile{X: 1, Y: 1}, 5)

	SweepStalePairs(w)

	if !ecs.NewMap1[components.ActiveMate](w).Has(suitor) {
		t.Fatalf("expected intact ActiveMate to survive the sweep")
	}
	if !ecs.NewMap1[components.MatingTarget](w).Has(target) {
		t.Fatalf("expected intact MatingTarget to survive the sweep")
	}
}

func TestEstablishParentChildAccumulatesSiblings(t *testing.T) {
	w := ecs.NewWorld()
	parent := mintEntity(w, components.Deer)
	childA := mintEntity(w, components.Deer)
	childB := mintEntity(w, components.Deer)

	EstablishParentChild(w, parent, childA, 10)
	EstablishParentChild(w, parent, childB, 12)

	rec := ecs.NewMap1[components.ParentOf](w).Get(parent)
	if len(rec.Children) != 2 {
		t.Fatalf("expected 2 children recorded, got %d", len(rec.Children))
	}
	if rec.FirstBirthTick != 10 {
		t.Fatalf("expected FirstBirthTick to stay at the first birth, got %d", rec.FirstBirthTick)
	}
}

func TestSweepStalePairsDropsChildOfWhenParentGone(t *testing.T) {
	w := ecs.NewWorld()
	parent := mintEntity(w, components.Deer)
	child := mintEntity(w, components.Deer)
	EstablishParentChild(w, parent, child, 1)

	// Parent despawned: its ParentOf component is removed without a
	// matching ChildOf cleanup (death.go handles ParentOf removal
	// itself; this test isolates the sweep's half of the contract).
	ecs.NewMap1[components.ParentOf](w).Remove(parent)

	SweepStalePairs(w)

	if ecs.NewMap1[components.ChildOf](w).Has(child) {
		t.Fatalf("expected ChildOf removed once the parent no longer exists")
	}
}
