package world

import "testing"

import "github.com/pthm-cable/ethosim/components"

func flatWorld(w, h int32) *CachedWorld {
	cw := &CachedWorld{Chunks: map[components.ChunkCoord]*Chunk{}}
	for cy := int32(0); cy*Size < h; cy++ {
		for cx := int32(0); cx*Size < w; cx++ {
			c := &Chunk{Coord: components.ChunkCoord{X: cx, Y: cy}}
			for y := 0; y < Size; y++ {
				for x := 0; x < Size; x++ {
					c.Terrain[y][x] = TerrainGrass
				}
			}
			cw.Chunks[c.Coord] = c
		}
	}
	return cw
}

func TestFindPathStraightLine(t *testing.T) {
	g := NewGrid(flatWorld(32, 32))
	path, ok, _ := g.FindPath(components.Tile{X: 0, Y: 0}, components.Tile{X: 5, Y: 0}, true, 100)
	if !ok {
		t.Fatalf("expected path to be found")
	}
	if len(path) != 5 {
		t.Fatalf("expected 5-step path, got %d: %v", len(path), path)
	}
	if path[len(path)-1] != (components.Tile{X: 5, Y: 0}) {
		t.Fatalf("expected path to end at goal, got %v", path[len(path)-1])
	}
}

func TestFindPathUnreachableBehindWall(t *testing.T) {
	cw := flatWorld(16, 16)
	chunk := cw.Chunks[components.ChunkCoord{X: 0, Y: 0}]
	for y := 0; y < Size; y++ {
		chunk.Terrain[y][5] = TerrainMountain
	}
	g := NewGrid(cw)

	_, ok, reason := g.FindPath(components.Tile{X: 0, Y: 0}, components.Tile{X: 10, Y: 0}, true, 50)
	if ok {
		t.Fatalf("expected unreachable target behind a solid wall")
	}
	if reason != components.PathUnreachable {
		t.Fatalf("expected PathUnreachable, got %v", reason)
	}
}

func TestFindPathSameTile(t *testing.T) {
	g := NewGrid(flatWorld(16, 16))
	path, ok, _ := g.FindPath(components.Tile{X: 3, Y: 3}, components.Tile{X: 3, Y: 3}, true, 10)
	if !ok || len(path) != 1 {
		t.Fatalf("expected single-tile path for same start/goal, got %v ok=%v", path, ok)
	}
}

func TestFindPathOutOfRange(t *testing.T) {
	g := NewGrid(flatWorld(64, 64))
	_, ok, reason := g.FindPath(components.Tile{X: 0, Y: 0}, components.Tile{X: 50, Y: 50}, true, 5)
	if ok {
		t.Fatalf("expected out-of-range failure")
	}
	if reason != components.PathOutOfRange {
		t.Fatalf("expected PathOutOfRange, got %v", reason)
	}
}

func TestFindPathDiagonalShorterThanOrthogonal(t *testing.T) {
	g := NewGrid(flatWorld(32, 32))
	diag, ok, _ := g.FindPath(components.Tile{X: 0, Y: 0}, components.Tile{X: 5, Y: 5}, true, 100)
	if !ok {
		t.Fatalf("expected diagonal path to be found")
	}
	orth, ok, _ := g.FindPath(components.Tile{X: 0, Y: 0}, components.Tile{X: 5, Y: 5}, false, 100)
	if !ok {
		t.Fatalf("expected orthogonal path to be found")
	}
	if len(diag) >= len(orth) {
		t.Fatalf("expected diagonal path (%d steps) to be shorter than orthogonal (%d steps)", len(diag), len(orth))
	}
}
