package components

import "github.com/mlange-42/ark/ecs"

// ActiveHunter marks a predator currently pursuing prey. The
// bidirectional counterpart is HuntingTarget on the prey entity.
type ActiveHunter struct {
	Target      ecs.Entity
	StartedTick uint64
}

// HuntingTarget marks prey currently being pursued by a predator.
type HuntingTarget struct {
	Predator    ecs.Entity
	StartedTick uint64
}

// ActiveMate marks the pursuing half of a mating pair. The counterpart
// is MatingTarget on the pursued entity.
type ActiveMate struct {
	Partner     ecs.Entity
	MeetingTile Tile
	StartedTick uint64
}

// MatingTarget marks the pursued half of a mating pair.
type MatingTarget struct {
	Suitor      ecs.Entity
	MeetingTile Tile
	StartedTick uint64
}

// ParentOf records an entity's offspring. The parent does not own its
// children; they exist independently after birth.
type ParentOf struct {
	Children       []ecs.Entity
	FirstBirthTick uint64
}

// ChildOf records an entity's parent.
type ChildOf struct {
	Parent   ecs.Entity
	BornTick uint64
}
