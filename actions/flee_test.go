package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestFleeEffectCompletesImmediately(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()
	e := spawnAnimal(w, components.Rabbit, components.Tile{X: 0, Y: 0})
	active := &components.ActiveAction{Kind: components.ActionFlee}

	if !fleeEffect(w, ctx, e, active) {
		t.Fatalf("expected flee to complete on arrival")
	}
}
