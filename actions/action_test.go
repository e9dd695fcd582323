package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/events"
	"github.com/pthm-cable/ethosim/pathing"
	"github.com/pthm-cable/ethosim/world"
)

func flatGrid() *world.Grid {
	cw := &world.CachedWorld{Chunks: map[components.ChunkCoord]*world.Chunk{}}
	chunk := &world.Chunk{Coord: components.ChunkCoord{X: 0, Y: 0}}
	for y := 0; y < world.Size; y++ {
		for x := 0; x < world.Size; x++ {
			chunk.Terrain[y][x] = world.TerrainGrass
		}
	}
	cw.Chunks[chunk.Coord] = chunk
	return world.NewGrid(cw)
}

func newTestContext() *Context {
	return &Context{
		Grid:       flatGrid(),
		Vegetation: world.NewVegetationGrid(100, 5, 0.1, 20),
		Spatial:    world.NewSpatialIndex(),
		PathQueue:  pathing.NewQueue(),
		Bus:        events.NewBus(),
		Tick:       1,
	}
}

func spawnAnimal(w *ecs.World, species components.Species, tile components.Tile) ecs.Entity {
	pos := components.TilePosition{Tile: tile}
	cfg := components.DefaultBehaviorConfig()
	return ecs.NewMap3[components.Species, components.TilePosition, components.BehaviorConfig](w).NewEntity(&species, &pos, &cfg)
}
