package world

import "github.com/pthm-cable/ethosim/components"

// Grid is the per-tile movement-cost grid derived from the cached
// world's terrain plus dynamic resource occupancy (C3). It is
// read-only during a tick; the underlying CachedWorld only changes via
// atomic swap between ticks (§5).
type Grid struct {
	world *CachedWorld
}

// NewGrid derives a pathfinding grid from a loaded world.
func NewGrid(w *CachedWorld) *Grid {
	return &Grid{world: w}
}

// SetWorld atomically swaps the underlying world (used when the loader
// replaces CachedWorld between ticks).
func (g *Grid) SetWorld(w *CachedWorld) {
	g.world = w
}

// Cost returns the movement cost of entering tile t. A cost of
// MaxCost/impassable=true means the tile can never be entered.
func (g *Grid) Cost(t components.Tile) (cost int32, impassable bool) {
	terrain := g.world.TerrainAt(t)
	cost, impassable = terrain.BaseCost()
	if impassable {
		return 0, true
	}
	if g.world.ResourceAt(t).Blocks() {
		return 0, true
	}
	return cost, false
}

// NearestWaterAdjacentWithin scans the square of side 2*radius+1 around
// center for the nearest passable tile adjacent to water, returning its
// Chebyshev distance to center. Used by DrinkWater's target selection
// (water tiles themselves are impassable, so the action stands next to
// one).
func (g *Grid) NearestWaterAdjacentWithin(center components.Tile, radius int32) (components.Tile, int32, bool) {
	best := components.Tile{}
	bestDist := int32(-1)
	found := false

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			t := components.Tile{X: center.X + dx, Y: center.Y + dy}
			if _, impassable := g.Cost(t); impassable {
				continue
			}
			if !g.adjacentToWater(t) {
				continue
			}
			dist := t.ChebyshevDist(center)
			if !found || dist < bestDist {
				bestDist = dist
				best = t
				found = true
			}
		}
	}
	return best, bestDist, found
}

func (g *Grid) adjacentToWater(t components.Tile) bool {
	for _, off := range neighborOffsets8 {
		n := components.Tile{X: t.X + off[0], Y: t.Y + off[1]}
		if g.world.TerrainAt(n).IsWater() {
			return true
		}
	}
	return false
}
