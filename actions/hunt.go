package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func init() {
	registerEffect(components.ActionHunt, huntEffect)
}

// huntEffect deals contact damage to the pursued prey each Acting tick,
// re-targets (by dropping back to PhaseNeedPath) when the prey has
// moved more than cfg.HuntRecomputeTiles tiles since the path was last
// computed, and completes once the prey's Health reaches zero (§4.8).
// Death itself — carcass spawn, despawn — is the lifecycle package's
// responsibility; this effect only ends the chase.
func huntEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	posMap := ecs.NewMap1[components.TilePosition](w)
	healthMap := ecs.NewMap1[components.Health](w)
	if !cfgMap.Has(e) || !posMap.Has(e) {
		return true
	}
	cfg := cfgMap.Get(e)

	prey := active.TargetEntity
	if !posMap.Has(prey) || !healthMap.Has(prey) {
		clearHuntBond(w, e, prey)
		return true
	}

	preyTile := posMap.Get(prey).Tile
	if preyTile.ChebyshevDist(active.TargetTile) > cfg.HuntRecomputeTiles {
		active.TargetTile = preyTile
		active.Phase = components.PhaseNeedPath
		return false
	}

	hunterTile := posMap.Get(e).Tile
	if !hunterTile.Adjacent(preyTile, true) {
		// Lost contact without exceeding the recompute threshold; wait
		// for the prey to settle rather than thrashing path requests.
		return false
	}

	health := healthMap.Get(prey)
	health.Add(-cfg.HuntDamage)
	if health.Value <= 0 {
		clearHuntBond(w, e, prey)
		return true
	}
	return false
}

func clearHuntBond(w *ecs.World, hunter, prey ecs.Entity) {
	if m := ecs.NewMap1[components.ActiveHunter](w); m.Has(hunter) {
		m.Remove(hunter)
	}
	if m := ecs.NewMap1[components.HuntingTarget](w); m.Has(prey) {
		m.Remove(prey)
	}
}
