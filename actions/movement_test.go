package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/world"
)

func spawnMover(w *ecs.World, tile components.Tile, ticksPerTile int32, path []components.Tile) ecs.Entity {
	pos := components.TilePosition{Tile: tile}
	speed := components.MovementSpeed{TicksPerTile: ticksPerTile}
	move := components.MovementState{Kind: components.FollowingPath, Path: &components.Path{Tiles: path}}
	return ecs.NewMap3[components.MovementState, components.MovementSpeed, components.TilePosition](w).NewEntity(&move, &speed, &pos)
}

func TestAdvanceMovementStepsAfterTicksPerTileElapsed(t *testing.T) {
	w := ecs.NewWorld()
	spatial := world.NewSpatialIndex()
	path := []components.Tile{{X: 1, Y: 0}, {X: 2, Y: 0}}
	e := spawnMover(w, components.Tile{X: 0, Y: 0}, 2, path)

	AdvanceMovement(w, spatial)
	pos := ecs.NewMap1[components.TilePosition](w).Get(e)
	if pos.Tile != (components.Tile{X: 0, Y: 0}) {
		t.Fatalf("expected no step yet (elapsed < ticksPerTile), got %v", pos.Tile)
	}

	AdvanceMovement(w, spatial)
	pos = ecs.NewMap1[components.TilePosition](w).Get(e)
	if pos.Tile != (components.Tile{X: 1, Y: 0}) {
		t.Fatalf("expected first step to land on (1,0), got %v", pos.Tile)
	}
}

func TestAdvanceMovementGoesIdleAfterLastTile(t *testing.T) {
	w := ecs.NewWorld()
	spatial := world.NewSpatialIndex()
	path := []components.Tile{{X: 1, Y: 0}}
	e := spawnMover(w, components.Tile{X: 0, Y: 0}, 1, path)

	AdvanceMovement(w, spatial)

	move := ecs.NewMap1[components.MovementState](w).Get(e)
	if move.Kind != components.Idle {
		t.Fatalf("expected movement state to go Idle after the last tile, got %v", move.Kind)
	}
	pos := ecs.NewMap1[components.TilePosition](w).Get(e)
	if pos.Tile != (components.Tile{X: 1, Y: 0}) {
		t.Fatalf("expected final position (1,0), got %v", pos.Tile)
	}
}

func TestAdvanceMovementIgnoresIdleEntities(t *testing.T) {
	w := ecs.NewWorld()
	spatial := world.NewSpatialIndex()
	pos := components.TilePosition{Tile: components.Tile{X: 3, Y: 3}}
	speed := components.MovementSpeed{TicksPerTile: 1}
	move := components.MovementState{Kind: components.Idle}
	e := ecs.NewMap3[components.MovementState, components.MovementSpeed, components.TilePosition](w).NewEntity(&move, &speed, &pos)

	AdvanceMovement(w, spatial)

	got := ecs.NewMap1[components.TilePosition](w).Get(e)
	if got.Tile != (components.Tile{X: 3, Y: 3}) {
		t.Fatalf("expected idle entity to stay put, got %v", got.Tile)
	}
}
