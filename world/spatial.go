package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

// SpatialIndex buckets entities by the 16x16 chunk containing their
// current TilePosition, answering "entities within radius of tile T"
// without scanning the whole population (C4). It is a single-writer
// resource: only the three maintenance passes below (insert/update/
// remove) ever mutate it within a tick; everything else only reads.
type SpatialIndex struct {
	buckets   map[components.ChunkCoord]map[ecs.Entity]struct{}
	lastChunk map[ecs.Entity]components.ChunkCoord
	tile      map[ecs.Entity]components.Tile
	species   map[ecs.Entity]components.Species
}

// NewSpatialIndex creates an empty spatial index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{
		buckets:   make(map[components.ChunkCoord]map[ecs.Entity]struct{}),
		lastChunk: make(map[ecs.Entity]components.ChunkCoord),
		tile:      make(map[ecs.Entity]components.Tile),
		species:   make(map[ecs.Entity]components.Species),
	}
}

// Insert adds an entity at its initial position. Called by the
// insertions sub-system for newly added positions.
func (s *SpatialIndex) Insert(e ecs.Entity, t components.Tile, species components.Species) {
	chunk := t.ChunkOf()
	s.bucket(chunk)[e] = struct{}{}
	s.lastChunk[e] = chunk
	s.tile[e] = t
	s.species[e] = species
}

// Update moves an entity to a new position, using the cached last-known
// chunk for an O(1) bucket move. Called by the updates sub-system for
// entities whose position changed this tick.
func (s *SpatialIndex) Update(e ecs.Entity, t components.Tile) {
	newChunk := t.ChunkOf()
	oldChunk, ok := s.lastChunk[e]
	if !ok {
		// Not previously tracked: treat as an insert using whatever
		// species was recorded (zero value if none — callers should
		// Insert first, but this keeps Update total).
		s.Insert(e, t, s.species[e])
		return
	}
	if oldChunk != newChunk {
		delete(s.bucket(oldChunk), e)
		s.bucket(newChunk)[e] = struct{}{}
		s.lastChunk[e] = newChunk
	}
	s.tile[e] = t
}

// Remove deletes an entity from the index. Called by the removals
// sub-system for despawned entities.
func (s *SpatialIndex) Remove(e ecs.Entity) {
	if chunk, ok := s.lastChunk[e]; ok {
		delete(s.bucket(chunk), e)
	}
	delete(s.lastChunk, e)
	delete(s.tile, e)
	delete(s.species, e)
}

// Contains reports whether the index currently tracks e (used by
// invariant tests).
func (s *SpatialIndex) Contains(e ecs.Entity) bool {
	_, ok := s.lastChunk[e]
	return ok
}

// ChunkOf returns the chunk the index believes e currently occupies.
func (s *SpatialIndex) ChunkOf(e ecs.Entity) (components.ChunkCoord, bool) {
	c, ok := s.lastChunk[e]
	return c, ok
}

// TileOf returns the tile the index believes e currently occupies.
func (s *SpatialIndex) TileOf(e ecs.Entity) (components.Tile, bool) {
	t, ok := s.tile[e]
	return t, ok
}

func (s *SpatialIndex) bucket(c components.ChunkCoord) map[ecs.Entity]struct{} {
	b, ok := s.buckets[c]
	if !ok {
		b = make(map[ecs.Entity]struct{})
		s.buckets[c] = b
	}
	return b
}

// EntitiesInRadius returns every entity whose current position is
// within Chebyshev distance radius of center, optionally filtered by a
// kind predicate (nil means no filtering).
func (s *SpatialIndex) EntitiesInRadius(center components.Tile, radius int32, kindFilter func(components.Species) bool) []ecs.Entity {
	centerChunk := center.ChunkOf()
	chunkRadius := radius/components.ChunkSize + 1

	var out []ecs.Entity
	for dy := -chunkRadius; dy <= chunkRadius; dy++ {
		for dx := -chunkRadius; dx <= chunkRadius; dx++ {
			chunk := components.ChunkCoord{X: centerChunk.X + dx, Y: centerChunk.Y + dy}
			bucket, ok := s.buckets[chunk]
			if !ok {
				continue
			}
			for e := range bucket {
				t, ok := s.tile[e]
				if !ok {
					continue
				}
				if t.ChebyshevDist(center) > radius {
					continue
				}
				if kindFilter != nil && !kindFilter(s.species[e]) {
					continue
				}
				out = append(out, e)
			}
		}
	}
	return out
}

// Len returns the total number of tracked entities, for diagnostics.
func (s *SpatialIndex) Len() int {
	return len(s.lastChunk)
}
