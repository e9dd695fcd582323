// Package world holds the substrate resources the simulation runtime
// queries every tick: the cached world (terrain/resources/heights per
// chunk), the derived pathfinding grid with A*, the spatial index, and
// the vegetation grid. All four are read by many systems; their writers
// include the loader, the movement system, spawning and death via
// SpatialIndex, and grazing and carcass decay via VegetationGrid.
package world

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ethosim/components"
)

// Size is the fixed width/height of a chunk, in tiles.
const Size = components.ChunkSize

// rawChunk is the on-disk shape of one chunk record: a mapping from
// layer name to a 16x16 grid of string values (heights encoded as
// strings too, to keep one decode path for all three required layers).
type rawChunk struct {
	Layers map[string][][]string `yaml:"layers"`
}

// rawWorld is the on-disk shape of a world pack manifest.
type rawWorld struct {
	Seed      int64               `yaml:"seed"`
	Generator map[string]string   `yaml:"generator"`
	Chunks    map[string]rawChunk `yaml:"chunks"`
}

// Chunk holds one 16x16 chunk's decoded layers.
type Chunk struct {
	Coord    components.ChunkCoord
	Terrain  [Size][Size]TerrainKind
	Resource [Size][Size]ResourceKind
	Height   [Size][Size]uint8
}

// CachedWorld is the immutable in-memory view of a loaded world pack.
// Read-only after Load; swapping the active world is an atomic pointer
// replacement (see Loader.Load).
type CachedWorld struct {
	Seed      int64
	Generator map[string]string
	Chunks    map[components.ChunkCoord]*Chunk
}

// ChunkAt returns the chunk containing tile t, or nil if unloaded.
func (w *CachedWorld) ChunkAt(t components.Tile) *Chunk {
	if w == nil {
		return nil
	}
	return w.Chunks[t.ChunkOf()]
}

// TerrainAt returns the terrain kind at tile t, or the empty kind
// (treated as impassable) if the chunk is unloaded.
func (w *CachedWorld) TerrainAt(t components.Tile) TerrainKind {
	c := w.ChunkAt(t)
	if c == nil {
		return ""
	}
	lx, ly := localOffset(t)
	return c.Terrain[ly][lx]
}

// ResourceAt returns the resource occupying tile t.
func (w *CachedWorld) ResourceAt(t components.Tile) ResourceKind {
	c := w.ChunkAt(t)
	if c == nil {
		return ""
	}
	lx, ly := localOffset(t)
	return c.Resource[ly][lx]
}

func localOffset(t components.Tile) (x, y int) {
	x = int(((t.X % Size) + Size) % Size)
	y = int(((t.Y % Size) + Size) % Size)
	return
}

// Loader loads a named world pack from a directory into a CachedWorld.
type Loader struct{}

// Load reads dir/world.yaml (the world pack manifest) and builds a
// CachedWorld. The load is all-or-nothing: on any error, nil is
// returned and the caller's previously-active world (if any) is left
// untouched, per §4.2's atomicity contract.
func (Loader) Load(dir string) (*CachedWorld, error) {
	path := filepath.Join(dir, "world.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("world: reading %s: %w", path, err)
	}

	var raw rawWorld
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("world: parsing %s: %w", path, err)
	}

	chunks := make(map[components.ChunkCoord]*Chunk, len(raw.Chunks))
	for key, rc := range raw.Chunks {
		coord, err := parseChunkKey(key)
		if err != nil {
			return nil, fmt.Errorf("world: chunk key %q: %w", key, err)
		}

		chunk, err := decodeChunk(coord, rc)
		if err != nil {
			return nil, fmt.Errorf("world: chunk %q: %w", key, err)
		}
		chunks[coord] = chunk
	}

	return &CachedWorld{
		Seed:      raw.Seed,
		Generator: raw.Generator,
		Chunks:    chunks,
	}, nil
}

func parseChunkKey(key string) (components.ChunkCoord, error) {
	var x, y int32
	n, err := fmt.Sscanf(key, "%d,%d", &x, &y)
	if err != nil || n != 2 {
		return components.ChunkCoord{}, fmt.Errorf("malformed chunk key, want \"x,y\"")
	}
	return components.ChunkCoord{X: x, Y: y}, nil
}

func decodeChunk(coord components.ChunkCoord, rc rawChunk) (*Chunk, error) {
	terrainGrid, ok := rc.Layers["terrain"]
	if !ok {
		return nil, fmt.Errorf("missing required layer \"terrain\"")
	}
	resourceGrid, ok := rc.Layers["resources"]
	if !ok {
		return nil, fmt.Errorf("missing required layer \"resources\"")
	}
	heightGrid, ok := rc.Layers["heights"]
	if !ok {
		return nil, fmt.Errorf("missing required layer \"heights\"")
	}

	if err := checkDims(terrainGrid); err != nil {
		return nil, fmt.Errorf("layer \"terrain\": %w", err)
	}
	if err := checkDims(resourceGrid); err != nil {
		return nil, fmt.Errorf("layer \"resources\": %w", err)
	}
	if err := checkDims(heightGrid); err != nil {
		return nil, fmt.Errorf("layer \"heights\": %w", err)
	}

	chunk := &Chunk{Coord: coord}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			chunk.Terrain[y][x] = TerrainKind(terrainGrid[y][x])
			chunk.Resource[y][x] = ResourceKind(resourceGrid[y][x])

			var h int
			if _, err := fmt.Sscanf(heightGrid[y][x], "%d", &h); err != nil {
				return nil, fmt.Errorf("height value %q at (%d,%d): %w", heightGrid[y][x], x, y, err)
			}
			if h < 0 || h > 255 {
				return nil, fmt.Errorf("height value %d at (%d,%d) out of [0,255]", h, x, y)
			}
			chunk.Height[y][x] = uint8(h)
		}
	}
	return chunk, nil
}

func checkDims(grid [][]string) error {
	if len(grid) != Size {
		return fmt.Errorf("expected %d rows, got %d", Size, len(grid))
	}
	for i, row := range grid {
		if len(row) != Size {
			return fmt.Errorf("row %d: expected %d columns, got %d", i, Size, len(row))
		}
	}
	return nil
}
