package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func init() {
	registerEffect(components.ActionRest, restEffect)
}

// restEffect raises Energy by cfg.RestRate each tick while Acting,
// completing once Energy reaches cfg.RestTarget (§4.8).
func restEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	energyMap := ecs.NewMap1[components.Energy](w)
	if !cfgMap.Has(e) || !energyMap.Has(e) {
		return true
	}
	cfg := cfgMap.Get(e)
	energy := energyMap.Get(e)

	energy.Add(cfg.RestRate)
	return energy.Value >= cfg.RestTarget
}
