package world

// TerrainKind is the terrain type of a single tile, as named in a loaded
// world pack's "terrain" layer.
type TerrainKind string

const (
	TerrainGrass       TerrainKind = "grass"
	TerrainForest      TerrainKind = "forest"
	TerrainHills       TerrainKind = "hills"
	TerrainSand        TerrainKind = "sand"
	TerrainShallowWater TerrainKind = "shallow_water"
	TerrainDeepWater   TerrainKind = "deep_water"
	TerrainMountain    TerrainKind = "mountain"
)

// terrainCost maps each known terrain kind to its base movement cost.
// Terrain not present here is treated as impassable.
var terrainCost = map[TerrainKind]int32{
	TerrainGrass:        1,
	TerrainSand:         2,
	TerrainHills:        4,
	TerrainForest:       3,
	TerrainShallowWater: 6,
}

// impassableTerrain is terrain no entity can ever enter.
var impassableTerrain = map[TerrainKind]bool{
	TerrainDeepWater: true,
	TerrainMountain:  true,
}

// BaseCost returns the terrain's movement cost and whether it is
// impassable on its own (before resource occupancy is considered).
func (k TerrainKind) BaseCost() (cost int32, impassable bool) {
	if impassableTerrain[k] {
		return 0, true
	}
	if c, ok := terrainCost[k]; ok {
		return c, false
	}
	// Unknown terrain name: treat conservatively as impassable so a
	// malformed or future-versioned world pack fails closed rather than
	// silently routing through unvalidated ground.
	return 0, true
}

// IsWater reports whether the terrain kind is any form of water tile,
// used by DrinkWater to find an adjacent drinking spot.
func (k TerrainKind) IsWater() bool {
	return k == TerrainShallowWater || k == TerrainDeepWater
}

// ResourceKind names a static resource occupying a tile, as found in a
// loaded world pack's "resources" layer. The empty string means no
// resource occupies the tile.
type ResourceKind string

// blockingResources are resources that make a tile impassable
// regardless of its terrain.
var blockingResources = map[ResourceKind]bool{
	"boulder":  true,
	"deadfall": true,
	"thicket":  true,
}

// Blocks reports whether the resource occupying a tile makes it
// impassable.
func (r ResourceKind) Blocks() bool {
	if r == "" {
		return false
	}
	return blockingResources[r]
}
