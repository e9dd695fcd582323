package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func init() {
	registerEffect(components.ActionDrinkWater, drinkEffect)
}

// drinkEffect reduces Thirst by cfg.DrinkAmount in a single completing
// tick (§4.8) — drinking is treated as instantaneous once at the water's
// edge.
func drinkEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	thirstMap := ecs.NewMap1[components.Thirst](w)
	if !cfgMap.Has(e) || !thirstMap.Has(e) {
		return true
	}
	cfg := cfgMap.Get(e)
	thirst := thirstMap.Get(e)

	thirst.Add(-cfg.DrinkAmount)
	return true
}
