package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestRestEffectIncrementsEnergyUntilTarget(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()
	e := spawnAnimal(w, components.Rabbit, components.Tile{X: 0, Y: 0})

	energy := components.Energy{Value: 0}
	ecs.NewMap1[components.Energy](w).Add(e, &energy)
	cfgMap := ecs.NewMap1[components.BehaviorConfig](w)
	cfg := cfgMap.Get(e)
	cfg.RestRate = 10
	cfg.RestTarget = 25

	active := &components.ActiveAction{Kind: components.ActionRest}

	if restEffect(w, ctx, e, active) {
		t.Fatalf("expected rest not to complete after one tick (10 < 25)")
	}
	if restEffect(w, ctx, e, active) {
		t.Fatalf("expected rest not to complete after two ticks (20 < 25)")
	}
	if !restEffect(w, ctx, e, active) {
		t.Fatalf("expected rest to complete once energy reaches target (30 >= 25)")
	}
}
