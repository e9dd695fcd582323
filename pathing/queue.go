// Package pathing implements the pathfinding queue (C7): entities
// request a path by priority, the queue drains a bounded number per
// tick, and the result is delivered as PathReady/PathFailed components
// on the requesting entity — never through the queue's own bookkeeping.
package pathing

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/world"
)

type dedupKey struct {
	entity ecs.Entity
	from   components.Tile
	to     components.Tile
}

type pathRequest struct {
	entity        ecs.Entity
	from, to      components.Tile
	allowDiagonal bool
	maxSteps      int32
}

// Queue is the pathfinding queue: three FIFOs by priority tier
// (Urgent/Normal/Lazy), deduped on (entity, from, to) so a bouncing
// action cannot flood it (§4.7).
type Queue struct {
	urgent []pathRequest
	normal []pathRequest
	lazy   []pathRequest
	queued map[dedupKey]struct{}
}

// NewQueue creates an empty pathfinding queue.
func NewQueue() *Queue {
	return &Queue{queued: make(map[dedupKey]struct{})}
}

// Enqueue requests a path for entity from "from" to "to" at the given
// priority. Returns false if an identical (entity, from, to) request is
// already pending.
func (q *Queue) Enqueue(entity ecs.Entity, from, to components.Tile, priority components.Priority, allowDiagonal bool, maxSteps int32) bool {
	key := dedupKey{entity, from, to}
	if _, dup := q.queued[key]; dup {
		return false
	}
	q.queued[key] = struct{}{}
	req := pathRequest{entity: entity, from: from, to: to, allowDiagonal: allowDiagonal, maxSteps: maxSteps}
	switch priority {
	case components.Urgent:
		q.urgent = append(q.urgent, req)
	case components.Normal:
		q.normal = append(q.normal, req)
	default:
		q.lazy = append(q.lazy, req)
	}
	return true
}

// Len returns the total number of pending requests across all tiers.
func (q *Queue) Len() int {
	return len(q.urgent) + len(q.normal) + len(q.lazy)
}

// Drain computes up to budget paths, in priority order (Urgent, Normal,
// Lazy; FIFO within a tier), against grid, and writes PathReady or
// PathFailed onto each requesting entity via w, removing PathRequested.
// Returns the number of requests actually drained.
func (q *Queue) Drain(w *ecs.World, grid *world.Grid, budget int, tick uint64) int {
	readyMap := ecs.NewMap1[components.PathReady](w)
	failedMap := ecs.NewMap1[components.PathFailed](w)
	requestedMap := ecs.NewMap1[components.PathRequested](w)

	drained := 0
	for drained < budget {
		req, ok := q.pop()
		if !ok {
			break
		}
		delete(q.queued, dedupKey{req.entity, req.from, req.to})

		tiles, found, reason := grid.FindPath(req.from, req.to, req.allowDiagonal, req.maxSteps)
		if requestedMap.Has(req.entity) {
			requestedMap.Remove(req.entity)
		}
		if found {
			readyMap.Add(req.entity, &components.PathReady{
				Path:         &components.Path{Tiles: tiles},
				ComputedTick: tick,
			})
		} else {
			failedMap.Add(req.entity, &components.PathFailed{Reason: reason})
		}
		drained++
	}
	return drained
}

func (q *Queue) pop() (pathRequest, bool) {
	if len(q.urgent) > 0 {
		req := q.urgent[0]
		q.urgent = q.urgent[1:]
		return req, true
	}
	if len(q.normal) > 0 {
		req := q.normal[0]
		q.normal = q.normal[1:]
		return req, true
	}
	if len(q.lazy) > 0 {
		req := q.lazy[0]
		q.lazy = q.lazy[1:]
		return req, true
	}
	return pathRequest{}, false
}
