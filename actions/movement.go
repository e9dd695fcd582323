package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/world"
)

// AdvanceMovement steps every entity with MovementState::FollowingPath
// once per tick, gated by MovementSpeed.TicksPerTile (§4.9). Movement is
// discrete: one tile per step, no interpolation.
func AdvanceMovement(w *ecs.World, spatial *world.SpatialIndex) {
	filter := ecs.NewFilter3[components.MovementState, components.MovementSpeed, components.TilePosition](w)
	query := filter.Query()

	for query.Next() {
		e := query.Entity()
		move, speed, pos := query.Get()

		if move.Kind != components.FollowingPath {
			continue
		}

		speed.Elapsed++
		if speed.Elapsed < speed.TicksPerTile {
			continue
		}
		speed.Elapsed = 0

		if move.Index >= len(move.Path.Tiles) {
			move.Kind = components.Idle
			move.Path = nil
			move.Index = 0
			continue
		}

		pos.Tile = move.Path.Tiles[move.Index]
		move.Index++
		if spatial != nil {
			spatial.Update(e, pos.Tile)
		}

		if move.Index == len(move.Path.Tiles) {
			move.Kind = components.Idle
			move.Path = nil
			move.Index = 0
		}
	}
}
