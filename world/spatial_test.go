package world

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestSpatialIndexInsertAndQuery(t *testing.T) {
	idx := NewSpatialIndex()
	e1 := ecs.Entity{}
	idx.Insert(e1, components.Tile{X: 5, Y: 5}, components.Rabbit)

	found := idx.EntitiesInRadius(components.Tile{X: 5, Y: 5}, 2, nil)
	if len(found) != 1 {
		t.Fatalf("expected 1 entity in radius, got %d", len(found))
	}

	far := idx.EntitiesInRadius(components.Tile{X: 50, Y: 50}, 2, nil)
	if len(far) != 0 {
		t.Fatalf("expected 0 entities far away, got %d", len(far))
	}
}

func TestSpatialIndexKindFilter(t *testing.T) {
	idx := NewSpatialIndex()
	rabbit := ecs.Entity{}
	idx.Insert(rabbit, components.Tile{X: 0, Y: 0}, components.Rabbit)

	onlyWolves := idx.EntitiesInRadius(components.Tile{X: 0, Y: 0}, 5, func(s components.Species) bool {
		return s == components.Wolf
	})
	if len(onlyWolves) != 0 {
		t.Fatalf("expected no wolves, got %d", len(onlyWolves))
	}
}

func TestSpatialIndexUpdateMovesChunkBucket(t *testing.T) {
	idx := NewSpatialIndex()
	e1 := ecs.Entity{}
	idx.Insert(e1, components.Tile{X: 0, Y: 0}, components.Deer)
	oldChunk, _ := idx.ChunkOf(e1)

	idx.Update(e1, components.Tile{X: 100, Y: 100})
	newChunk, _ := idx.ChunkOf(e1)

	if oldChunk == newChunk {
		t.Fatalf("expected chunk to change after large position update")
	}
	if !idx.Contains(e1) {
		t.Fatalf("expected entity still tracked after update")
	}
}

func TestSpatialIndexRemove(t *testing.T) {
	idx := NewSpatialIndex()
	e1 := ecs.Entity{}
	idx.Insert(e1, components.Tile{X: 1, Y: 1}, components.Fox)
	idx.Remove(e1)

	if idx.Contains(e1) {
		t.Fatalf("expected entity removed from index")
	}
	if len(idx.EntitiesInRadius(components.Tile{X: 1, Y: 1}, 5, nil)) != 0 {
		t.Fatalf("expected no entities after removal")
	}
}
