package components

// Tile is an integer 2D lattice coordinate, the atomic spatial unit.
type Tile struct {
	X, Y int32
}

// ChebyshevDist returns the Chebyshev (8-neighbour) distance to other.
func (t Tile) ChebyshevDist(other Tile) int32 {
	dx := t.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := t.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// ManhattanDist returns the Manhattan (4-neighbour) distance to other.
func (t Tile) ManhattanDist(other Tile) int32 {
	dx := t.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := t.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether other is a 4- or 8-neighbour of t (distance
// exactly one step on each differing axis, never the same tile).
func (t Tile) Adjacent(other Tile, allowDiagonal bool) bool {
	if t == other {
		return false
	}
	dx := t.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := t.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if allowDiagonal {
		return dx <= 1 && dy <= 1
	}
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

// ChunkOf returns the 16x16 chunk coordinate containing the tile.
func (t Tile) ChunkOf() ChunkCoord {
	return ChunkCoord{X: floorDiv(t.X, ChunkSize), Y: floorDiv(t.Y, ChunkSize)}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ChunkSize is the fixed width/height of a world chunk, in tiles.
const ChunkSize = 16

// ChunkCoord identifies a 16x16 chunk within the world.
type ChunkCoord struct {
	X, Y int32
}

// TilePosition is the entity's current location. It must only change in
// discrete single-tile steps (enforced by the movement system).
type TilePosition struct {
	Tile Tile
}

// MovementSpeed is the number of ticks required to cross one tile.
type MovementSpeed struct {
	TicksPerTile int32

	// Elapsed counts ticks since the last tile step; owned by the
	// movement system only.
	Elapsed int32
}

// MoveStateKind distinguishes the two MovementState variants.
type MoveStateKind uint8

const (
	Idle MoveStateKind = iota
	FollowingPath
)

// Path is a shared, immutable ordered sequence of tiles a FollowingPath
// movement state walks. It is produced once by the pathfinder and never
// mutated afterward.
type Path struct {
	Tiles []Tile
}

// MovementState tracks whether an entity is idle or walking a path.
// Invariant: when Kind == FollowingPath, Index < len(Path.Tiles) and
// Path.Tiles[0] was adjacent to the TilePosition at the time the path
// was assigned.
type MovementState struct {
	Kind  MoveStateKind
	Path  *Path
	Index int
}
