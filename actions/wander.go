package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func init() {
	registerEffect(components.ActionWander, wanderEffect)
}

// wanderEffect has no terminal effect beyond arrival (§4.8): reaching
// the wander tile is the whole action.
func wanderEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	return true
}
