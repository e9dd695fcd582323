package components

import "github.com/mlange-42/ark/ecs"

// Priority is the shared Urgent/Normal/Low priority tier used by both
// the think queue and the pathfinding queue. The pathfinding queue
// refers to its Low tier as "Lazy" in documentation; it is the same
// value.
type Priority uint8

const (
	Urgent Priority = iota
	Normal
	Low
)

// Lazy is an alias for Low, used when issuing low-priority path
// requests (Wander), matching the pathfinding queue's naming in §4.7.
const Lazy = Low

// ReplanReason explains why an entity was scheduled onto the think
// queue.
type ReplanReason uint8

const (
	ReasonFearTriggered ReplanReason = iota
	ReasonHungerCritical
	ReasonHungerModerate
	ReasonThirstCritical
	ReasonThirstModerate
	ReasonEnergyCritical
	ReasonActionCompleted
	ReasonIdle
)

// NeedsReplanning marks that the planner should consider this entity
// this tick. Removed once the planner drains the request.
type NeedsReplanning struct {
	Reason ReplanReason
}

// ActionKind identifies which action state machine ActiveAction is
// running.
type ActionKind uint8

const (
	ActionWander ActionKind = iota
	ActionGraze
	ActionDrinkWater
	ActionHunt
	ActionFlee
	ActionMate
	ActionRest
)

// ActionPhase is the shared FSM phase every action state machine moves
// through.
type ActionPhase uint8

const (
	PhaseNeedPath ActionPhase = iota
	PhaseWaitingForPath
	PhaseMoving
	PhaseActing // action-specific terminal effect in progress (e.g. Graze, Mate dwell)
	PhaseDone
	PhaseFailed
)

// ActiveAction is present iff the entity is currently executing an
// action. Once set, only the action's own state machine reaching
// terminal, a higher-utility preemption, or entity death may remove it.
type ActiveAction struct {
	Kind        ActionKind
	Phase       ActionPhase
	Priority    Priority
	Utility     float32
	StartedTick uint64

	// Retarget/progress bookkeeping shared across actions.
	TargetTile   Tile
	TargetEntity ecs.Entity // Hunt's prey, Mate's partner; zero value if unused
	RetryCount   int32
	DwellTicks   int32 // Mate's post-arrival dwell counter
}

// PathRequestReason documents why a path was requested, for logging.
type PathRequestReason uint8

const (
	PathReasonAction PathRequestReason = iota
)

// PathRequested marks that a path has been asked for and is awaiting
// computation by the pathfinding queue.
type PathRequested struct {
	RequestID     uint64
	Target        Tile
	Priority      Priority
	RequestedTick uint64
}

// PathReady delivers a successfully computed path. Mutually exclusive
// with PathFailed; removed by the consuming action.
type PathReady struct {
	Path        *Path
	ComputedTick uint64
}

// PathFailReason explains why a path request failed.
type PathFailReason uint8

const (
	PathUnreachable PathFailReason = iota
	PathOutOfRange
	PathTimeout
)

// PathFailed delivers a failed path request outcome.
type PathFailed struct {
	Reason PathFailReason
}
