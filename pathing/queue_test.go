package pathing

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
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

func mintEntity(w *ecs.World, species components.Species) ecs.Entity {
	return ecs.NewMap1[components.Species](w).NewEntity(&species)
}

func TestQueueDedupsIdenticalRequest(t *testing.T) {
	q := NewQueue()
	w := ecs.NewWorld()
	e := mintEntity(w, components.Rabbit)

	if !q.Enqueue(e, components.Tile{X: 0, Y: 0}, components.Tile{X: 5, Y: 5}, components.Normal, true, 50) {
		t.Fatalf("expected first enqueue to succeed")
	}
	if q.Enqueue(e, components.Tile{X: 0, Y: 0}, components.Tile{X: 5, Y: 5}, components.Normal, true, 50) {
		t.Fatalf("expected duplicate (entity,from,to) enqueue to be rejected")
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 queued request, got %d", q.Len())
	}
}

func TestQueueDrainDeliversPathReady(t *testing.T) {
	q := NewQueue()
	w := ecs.NewWorld()
	e := mintEntity(w, components.Rabbit)
	grid := flatGrid()

	q.Enqueue(e, components.Tile{X: 0, Y: 0}, components.Tile{X: 3, Y: 0}, components.Urgent, true, 50)
	drained := q.Drain(w, grid, 10, 1)
	if drained != 1 {
		t.Fatalf("expected 1 drained, got %d", drained)
	}

	readyMap := ecs.NewMap1[components.PathReady](w)
	if !readyMap.Has(e) {
		t.Fatalf("expected PathReady to be delivered")
	}
	if len(readyMap.Get(e).Path.Tiles) != 3 {
		t.Fatalf("expected 3-step path, got %d", len(readyMap.Get(e).Path.Tiles))
	}
}

func TestQueueDrainDeliversPathFailedWhenUnreachable(t *testing.T) {
	q := NewQueue()
	w := ecs.NewWorld()
	e := mintEntity(w, components.Rabbit)
	grid := flatGrid()

	q.Enqueue(e, components.Tile{X: 0, Y: 0}, components.Tile{X: 100, Y: 100}, components.Normal, true, 5)
	q.Drain(w, grid, 10, 1)

	failedMap := ecs.NewMap1[components.PathFailed](w)
	if !failedMap.Has(e) {
		t.Fatalf("expected PathFailed to be delivered for out-of-range target")
	}
	if failedMap.Get(e).Reason != components.PathOutOfRange {
		t.Fatalf("expected PathOutOfRange, got %v", failedMap.Get(e).Reason)
	}
}

func TestQueueDrainRespectsPriorityOrder(t *testing.T) {
	q := NewQueue()
	w := ecs.NewWorld()
	lazyEntity := mintEntity(w, components.Rabbit)
	urgentEntity := mintEntity(w, components.Wolf)
	grid := flatGrid()

	q.Enqueue(lazyEntity, components.Tile{X: 0, Y: 0}, components.Tile{X: 1, Y: 0}, components.Lazy, true, 10)
	q.Enqueue(urgentEntity, components.Tile{X: 0, Y: 0}, components.Tile{X: 1, Y: 0}, components.Urgent, true, 10)

	drained := q.Drain(w, grid, 1, 1)
	if drained != 1 {
		t.Fatalf("expected only 1 drained under budget, got %d", drained)
	}

	readyMap := ecs.NewMap1[components.PathReady](w)
	if !readyMap.Has(urgentEntity) {
		t.Fatalf("expected the urgent request to drain first")
	}
	if readyMap.Has(lazyEntity) {
		t.Fatalf("expected the lazy request to remain queued")
	}
}

func TestQueueDrainBudgetCaps(t *testing.T) {
	q := NewQueue()
	w := ecs.NewWorld()
	grid := flatGrid()
	for i := 0; i < 5; i++ {
		e := mintEntity(w, components.Rabbit)
		q.Enqueue(e, components.Tile{X: 0, Y: 0}, components.Tile{X: 1, Y: 0}, components.Normal, true, 10)
	}
	drained := q.Drain(w, grid, 3, 1)
	if drained != 3 {
		t.Fatalf("expected exactly 3 drained, got %d", drained)
	}
	if q.Len() != 2 {
		t.Fatalf("expected 2 remaining queued, got %d", q.Len())
	}
}
