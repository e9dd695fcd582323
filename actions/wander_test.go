package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestWanderEffectCompletesImmediately(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()
	e := spawnAnimal(w, components.Rabbit, components.Tile{X: 0, Y: 0})
	active := &components.ActiveAction{Kind: components.ActionWander}

	if !wanderEffect(w, ctx, e, active) {
		t.Fatalf("expected wander to complete on first Acting tick")
	}
}
