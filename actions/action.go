// Package actions implements the action state machines (C9): each
// ActiveAction advances through NeedPath -> WaitingForPath -> Moving ->
// Acting -> Done/Failed, driven once per tick by Advance.
package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/events"
	"github.com/pthm-cable/ethosim/pathing"
	"github.com/pthm-cable/ethosim/world"
)

// maxRetries bounds how many times a failed path request is retried
// before the action terminates (§4.8).
const maxRetries = 3

// Context bundles the shared resources action effects need, threaded
// through Advance rather than stored on individual actions (actions
// themselves are pure component data, not objects).
type Context struct {
	Grid       *world.Grid
	Vegetation *world.VegetationGrid
	Spatial    *world.SpatialIndex
	PathQueue  *pathing.Queue
	Bus        *events.Bus
	Tick       uint64
}

// effect performs an action kind's Acting-phase terminal behavior,
// returning true once the action is complete (Phase should become
// Done). Implemented per action kind in wander.go, graze.go, etc.
type effect func(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool

var effects = map[components.ActionKind]effect{}

// registerEffect is called from each action file's init to populate the
// dispatch table.
func registerEffect(kind components.ActionKind, fn effect) {
	effects[kind] = fn
}

// Advance runs one tick of every entity's action state machine. Every
// phase handler below may add or remove components (a new path
// request, a resolved movement state, a completed mating bond), which
// ark forbids while a query holds the world locked — so the entities
// to process are collected first, and the switch over each one only
// runs once the filter above has been fully drained, mirroring the
// collect-then-mutate shape already used for toFinalize.
func Advance(w *ecs.World, ctx *Context) {
	filter := ecs.NewFilter1[components.ActiveAction](w)
	query := filter.Query()

	var entities []ecs.Entity
	for query.Next() {
		entities = append(entities, query.Entity())
	}

	activeMap := ecs.NewMap1[components.ActiveAction](w)
	var toFinalize []ecs.Entity
	for _, e := range entities {
		act := *activeMap.Get(e)
		active := &act

		switch active.Phase {
		case components.PhaseNeedPath:
			requestPath(w, ctx, e, active)
		case components.PhaseWaitingForPath:
			resolvePath(w, ctx, e, active)
		case components.PhaseMoving:
			if arrivedAtTarget(w, e) {
				active.Phase = components.PhaseActing
			}
		case components.PhaseActing:
			fn, ok := effects[active.Kind]
			if ok && fn(w, ctx, e, active) {
				active.Phase = components.PhaseDone
			}
		}
		// The handlers above may add or remove components on e, which
		// moves its storage, so the copy is written back through a fresh Get.
		*activeMap.Get(e) = act

		if active.Phase == components.PhaseDone || active.Phase == components.PhaseFailed {
			toFinalize = append(toFinalize, e)
		}
	}

	for _, e := range toFinalize {
		active := activeMap.Get(e)
		success := active.Phase == components.PhaseDone
		ctx.Bus.Emit(events.Event{Type: events.ActionCompleted, Entity: e, Success: success})
		clearTransientPathState(w, e)
		activeMap.Remove(e)
	}
}

func requestPath(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) {
	posMap := ecs.NewMap1[components.TilePosition](w)
	if !posMap.Has(e) {
		active.Phase = components.PhaseFailed
		return
	}
	from := posMap.Get(e).Tile
	to := active.TargetTile

	ctx.PathQueue.Enqueue(e, from, to, active.Priority, true, maxPathSteps(active))
	ecs.NewMap1[components.PathRequested](w).Add(e, &components.PathRequested{
		Target:        to,
		Priority:      active.Priority,
		RequestedTick: ctx.Tick,
	})
	active.Phase = components.PhaseWaitingForPath
}

func maxPathSteps(active *components.ActiveAction) int32 {
	// A generous bound: actions target tiles within their own search
	// radius, so this only needs to exceed the largest configured
	// radius to avoid spurious OutOfRange failures.
	return 64
}

func resolvePath(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) {
	readyMap := ecs.NewMap1[components.PathReady](w)
	failedMap := ecs.NewMap1[components.PathFailed](w)

	if readyMap.Has(e) {
		path := readyMap.Get(e).Path
		readyMap.Remove(e)
		if requestedMap := (ecs.NewMap1[components.PathRequested](w)); requestedMap.Has(e) {
			requestedMap.Remove(e)
		}
		// SpawnSpecies attaches MovementState to every entity, so this is
		// always a mutation of the existing component, never a fresh Add
		// (which ark would reject as a duplicate).
		moveMap := ecs.NewMap1[components.MovementState](w)
		if moveMap.Has(e) {
			move := moveMap.Get(e)
			move.Kind = components.FollowingPath
			move.Path = path
			move.Index = 0
		} else {
			moveMap.Add(e, &components.MovementState{Kind: components.FollowingPath, Path: path, Index: 0})
		}
		active.Phase = components.PhaseMoving
		return
	}

	if failedMap.Has(e) {
		failedMap.Remove(e)
		if requestedMap := (ecs.NewMap1[components.PathRequested](w)); requestedMap.Has(e) {
			requestedMap.Remove(e)
		}
		active.RetryCount++
		if active.RetryCount > maxRetries {
			active.Phase = components.PhaseFailed
			return
		}
		active.Phase = components.PhaseNeedPath
	}
}

// arrivedAtTarget reports whether the entity's MovementState has
// returned to Idle, the movement system's change-detectable signal that
// the path completed (§4.9).
func arrivedAtTarget(w *ecs.World, e ecs.Entity) bool {
	moveMap := ecs.NewMap1[components.MovementState](w)
	if !moveMap.Has(e) {
		return true // stationary actions (e.g. re-entering Acting) have no movement state
	}
	return moveMap.Get(e).Kind == components.Idle
}

func clearTransientPathState(w *ecs.World, e ecs.Entity) {
	if m := ecs.NewMap1[components.PathRequested](w); m.Has(e) {
		m.Remove(e)
	}
	if m := ecs.NewMap1[components.PathReady](w); m.Has(e) {
		m.Remove(e)
	}
	if m := ecs.NewMap1[components.PathFailed](w); m.Has(e) {
		m.Remove(e)
	}
}
