// Package think implements the utility-based planner: the priority
// queue that schedules entities for replanning, and the planner that
// picks each drained entity's next action.
package think

import (
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

// priorityFor maps a replan reason to its queue tier (§4.6).
func priorityFor(reason components.ReplanReason) components.Priority {
	switch reason {
	case components.ReasonFearTriggered, components.ReasonHungerCritical, components.ReasonThirstCritical, components.ReasonEnergyCritical:
		return components.Urgent
	case components.ReasonHungerModerate, components.ReasonThirstModerate, components.ReasonActionCompleted:
		return components.Normal
	default:
		return components.Low
	}
}

type request struct {
	entity ecs.Entity
	reason components.ReplanReason
}

// Queue is the think queue (C8): three FIFOs by priority tier with a
// dedup set so an entity cannot be scheduled twice before it is
// drained. The mutex lets the scheduler run independent trigger scans
// (fear, stat thresholds) concurrently against the same Queue — their
// component reads are disjoint, but Schedule's writes are not.
type Queue struct {
	mu     sync.Mutex
	urgent []request
	normal []request
	low    []request
	queued map[ecs.Entity]struct{}
}

// NewQueue creates an empty think queue.
func NewQueue() *Queue {
	return &Queue{queued: make(map[ecs.Entity]struct{})}
}

// Schedule enqueues e for replanning with reason, unless it is already
// pending. Returns false if the entity was already queued.
func (q *Queue) Schedule(e ecs.Entity, reason components.ReplanReason) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.queued == nil {
		q.queued = make(map[ecs.Entity]struct{})
	}
	if _, dup := q.queued[e]; dup {
		return false
	}
	q.queued[e] = struct{}{}
	req := request{entity: e, reason: reason}
	switch priorityFor(reason) {
	case components.Urgent:
		q.urgent = append(q.urgent, req)
	case components.Normal:
		q.normal = append(q.normal, req)
	default:
		q.low = append(q.low, req)
	}
	return true
}

// Pending reports whether e currently has an outstanding think request.
func (q *Queue) Pending(e ecs.Entity) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.queued[e]
	return ok
}

// Len returns the total number of queued requests across all tiers.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.urgent) + len(q.normal) + len(q.low)
}

// Drain pops up to budget requests in priority order (Urgent, Normal,
// Low; FIFO within a tier) and calls fn for each, removing the entity
// from the dedup set as it is drained.
func (q *Queue) Drain(budget int, fn func(ecs.Entity, components.ReplanReason)) {
	drained := 0
	for drained < budget {
		q.mu.Lock()
		req, ok := q.pop()
		if ok {
			delete(q.queued, req.entity)
		}
		q.mu.Unlock()
		if !ok {
			return
		}
		fn(req.entity, req.reason)
		drained++
	}
}

func (q *Queue) pop() (request, bool) {
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
	if len(q.low) > 0 {
		req := q.low[0]
		q.low = q.low[1:]
		return req, true
	}
	return request{}, false
}
