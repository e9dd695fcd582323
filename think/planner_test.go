package think

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/world"
)

func flatGrassWorld() *world.CachedWorld {
	cw := &world.CachedWorld{Chunks: map[components.ChunkCoord]*world.Chunk{}}
	chunk := &world.Chunk{Coord: components.ChunkCoord{X: 0, Y: 0}}
	for y := 0; y < world.Size; y++ {
		for x := 0; x < world.Size; x++ {
			chunk.Terrain[y][x] = world.TerrainGrass
		}
	}
	cw.Chunks[chunk.Coord] = chunk
	return cw
}

func spawnBasicEntity(w *ecs.World, species components.Species, pos components.Tile, cfg components.BehaviorConfig) ecs.Entity {
	mapper := ecs.NewMap3[components.Species, components.TilePosition, components.BehaviorConfig](w)
	return mapper.NewEntity(&species, &components.TilePosition{Tile: pos}, &cfg)
}

func TestPlannerPicksWanderWhenNoUrgentNeed(t *testing.T) {
	w := ecs.NewWorld()
	cfg := components.DefaultBehaviorConfig()
	e := spawnBasicEntity(w, components.Rabbit, components.Tile{X: 0, Y: 0}, cfg)

	p := NewPlanner(nil, nil, nil, nil)
	p.Plan(w, e, 1)

	activeMap := ecs.NewMap1[components.ActiveAction](w)
	if !activeMap.Has(e) {
		t.Fatalf("expected an ActiveAction to be installed")
	}
	if activeMap.Get(e).Kind != components.ActionWander {
		t.Fatalf("expected Wander as the fallback action, got %v", activeMap.Get(e).Kind)
	}
}

func TestPlannerPicksDrinkWaterWhenThirstyAndWaterNearby(t *testing.T) {
	cw := flatGrassWorld()
	cw.Chunks[components.ChunkCoord{X: 0, Y: 0}].Terrain[0][3] = world.TerrainDeepWater
	grid := world.NewGrid(cw)

	w := ecs.NewWorld()
	cfg := components.DefaultBehaviorConfig()
	e := spawnBasicEntity(w, components.Deer, components.Tile{X: 0, Y: 0}, cfg)
	ecs.NewMap1[components.Thirst](w).Add(e, &components.Thirst{Value: 90})

	p := NewPlanner(grid, nil, nil, nil)
	p.Plan(w, e, 1)

	activeMap := ecs.NewMap1[components.ActiveAction](w)
	if !activeMap.Has(e) {
		t.Fatalf("expected an ActiveAction to be installed")
	}
	if activeMap.Get(e).Kind != components.ActionDrinkWater {
		t.Fatalf("expected DrinkWater to win with high thirst and nearby water, got %v", activeMap.Get(e).Kind)
	}
}

func TestPlannerDoesNotPreemptBelowMargin(t *testing.T) {
	w := ecs.NewWorld()
	cfg := components.DefaultBehaviorConfig()
	e := spawnBasicEntity(w, components.Rabbit, components.Tile{X: 0, Y: 0}, cfg)

	activeMap := ecs.NewMap1[components.ActiveAction](w)
	activeMap.Add(e, &components.ActiveAction{Kind: components.ActionRest, Utility: 0.5, Phase: components.PhaseActing})

	p := NewPlanner(nil, nil, nil, nil)
	p.Plan(w, e, 1)

	if activeMap.Get(e).Kind != components.ActionRest {
		t.Fatalf("expected low-utility Wander not to preempt Rest, got %v", activeMap.Get(e).Kind)
	}
}

func TestPlannerPreemptsWhenMarginExceeded(t *testing.T) {
	cw := flatGrassWorld()
	cw.Chunks[components.ChunkCoord{X: 0, Y: 0}].Terrain[0][1] = world.TerrainDeepWater
	grid := world.NewGrid(cw)

	w := ecs.NewWorld()
	cfg := components.DefaultBehaviorConfig()
	e := spawnBasicEntity(w, components.Deer, components.Tile{X: 0, Y: 0}, cfg)
	ecs.NewMap1[components.Thirst](w).Add(e, &components.Thirst{Value: 95})

	activeMap := ecs.NewMap1[components.ActiveAction](w)
	activeMap.Add(e, &components.ActiveAction{Kind: components.ActionWander, Utility: 0.01, Phase: components.PhaseMoving})

	p := NewPlanner(grid, nil, nil, nil)
	p.Plan(w, e, 5)

	if activeMap.Get(e).Kind != components.ActionDrinkWater {
		t.Fatalf("expected DrinkWater to preempt low-utility Wander, got %v", activeMap.Get(e).Kind)
	}
}
