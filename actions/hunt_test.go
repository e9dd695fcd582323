package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestHuntEffectDamagesAdjacentPreyAndCompletesOnDeath(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()

	hunter := spawnAnimal(w, components.Wolf, components.Tile{X: 0, Y: 0})
	prey := spawnAnimal(w, components.Rabbit, components.Tile{X: 1, Y: 0})
	ecs.NewMap1[components.Health](w).Add(prey, &components.Health{Value: 30})

	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	cfgMap.Get(hunter).HuntDamage = 20
	cfgMap.Get(hunter).HuntRecomputeTiles = 3

	active := &components.ActiveAction{
		Kind:         components.ActionHunt,
		TargetEntity: prey,
		TargetTile:   components.Tile{X: 1, Y: 0},
	}

	if huntEffect(w, ctx, hunter, active) {
		t.Fatalf("expected hunt not to complete after one hit (30-20=10 health left)")
	}
	if !huntEffect(w, ctx, hunter, active) {
		t.Fatalf("expected hunt to complete once prey health reaches zero")
	}
}

func TestHuntEffectWaitsWhenNotAdjacent(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()

	hunter := spawnAnimal(w, components.Wolf, components.Tile{X: 0, Y: 0})
	prey := spawnAnimal(w, components.Rabbit, components.Tile{X: 1, Y: 1})
	ecs.NewMap1[components.Health](w).Add(prey, &components.Health{Value: 30})

	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	cfgMap.Get(hunter).HuntDamage = 20
	cfgMap.Get(hunter).HuntRecomputeTiles = 3

	active := &components.ActiveAction{
		Kind:         components.ActionHunt,
		TargetEntity: prey,
		TargetTile:   components.Tile{X: 1, Y: 1},
	}

	posMap := ecs.NewMap1[components.TilePosition](w)
	posMap.Get(prey).Tile = components.Tile{X: 5, Y: 5}
	active.TargetTile = components.Tile{X: 5, Y: 5}

	if huntEffect(w, ctx, hunter, active) {
		t.Fatalf("expected hunt to keep waiting, not complete, when prey is out of contact range")
	}
	if ecs.NewMap1[components.Health](w).Get(prey).Value != 30 {
		t.Fatalf("expected no damage dealt while out of contact range")
	}
}

func TestHuntEffectRetargetsWhenPreyMovesBeyondRecomputeThreshold(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()

	hunter := spawnAnimal(w, components.Wolf, components.Tile{X: 0, Y: 0})
	prey := spawnAnimal(w, components.Rabbit, components.Tile{X: 1, Y: 0})
	ecs.NewMap1[components.Health](w).Add(prey, &components.Health{Value: 30})

	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	cfgMap.Get(hunter).HuntDamage = 20
	cfgMap.Get(hunter).HuntRecomputeTiles = 2

	active := &components.ActiveAction{
		Kind:         components.ActionHunt,
		TargetEntity: prey,
		TargetTile:   components.Tile{X: 1, Y: 0},
		Phase:        components.PhaseActing,
	}

	posMap := ecs.NewMap1[components.TilePosition](w)
	posMap.Get(prey).Tile = components.Tile{X: 10, Y: 0}

	if huntEffect(w, ctx, hunter, active) {
		t.Fatalf("expected retarget, not completion")
	}
	if active.Phase != components.PhaseNeedPath {
		t.Fatalf("expected phase reset to PhaseNeedPath on retarget, got %v", active.Phase)
	}
	if active.TargetTile != (components.Tile{X: 10, Y: 0}) {
		t.Fatalf("expected target tile updated to prey's new position")
	}
}
