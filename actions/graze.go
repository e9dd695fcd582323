package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func init() {
	registerEffect(components.ActionGraze, grazeEffect)
}

// grazeEffect consumes vegetation at the entity's tile and reduces
// Hunger by whatever was actually available, preserving the
// mass-conservation invariant (§8): an entity cannot eat more biomass
// than the cell held.
func grazeEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	hungerMap := ecs.NewMap1[components.Hunger](w)
	posMap := ecs.NewMap1[components.TilePosition](w)
	if !cfgMap.Has(e) || !hungerMap.Has(e) || !posMap.Has(e) {
		return true
	}
	cfg := cfgMap.Get(e)
	hunger := hungerMap.Get(e)
	tile := posMap.Get(e).Tile

	consumed := ctx.Vegetation.Consume(tile, cfg.GrazeAmount, ctx.Tick)
	hunger.Add(-consumed)
	return true
}
