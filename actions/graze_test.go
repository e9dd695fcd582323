package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestGrazeEffectConsumesVegetationAndReducesHunger(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()
	tile := components.Tile{X: 2, Y: 2}
	e := spawnAnimal(w, components.Rabbit, tile)
	ctx.Vegetation.Seed(tile, 15)

	hunger := components.Hunger{Value: 80}
	ecs.NewMap1[components.Hunger](w).Add(e, &hunger)
	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	cfgMap.Get(e).GrazeAmount = 30

	active := &components.ActiveAction{Kind: components.ActionGraze}
	if !grazeEffect(w, ctx, e, active) {
		t.Fatalf("expected graze to complete in one tick")
	}

	gotHunger := ecs.NewMap1[components.Hunger](w).Get(e).Value
	if gotHunger != 65 {
		t.Fatalf("expected hunger reduced by the 15 available biomass to 65, got %v", gotHunger)
	}
	if ctx.Vegetation.CellAt(tile).Biomass != 0 {
		t.Fatalf("expected cell fully consumed, got %v", ctx.Vegetation.CellAt(tile).Biomass)
	}
}
