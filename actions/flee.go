package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func init() {
	registerEffect(components.ActionFlee, fleeEffect)
}

// fleeEffect completes immediately on arrival. If fear persists after
// this, the think triggers will schedule a fresh plan rather than the
// action itself looping (§4.8).
func fleeEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	return true
}
