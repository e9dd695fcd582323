package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/actions"
	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/config"
	"github.com/pthm-cable/ethosim/events"
	"github.com/pthm-cable/ethosim/lifecycle"
	"github.com/pthm-cable/ethosim/relations"
	"github.com/pthm-cable/ethosim/telemetry"
	"github.com/pthm-cable/ethosim/think"
	"github.com/pthm-cable/ethosim/world"
)

// pairSweepInterval is how often the stale relationship-pair sweep
// runs, a periodic consistency pass rather than a per-tick one (§4.10).
const pairSweepInterval = 10

// Step advances the simulation by exactly one tick, running the phase
// sets in order: Planning, ActionExecution, Movement,
// Stats/Reproduction, Cleanup — generalized from the teacher's flat
// simulationStep phase sequence (game/game.go), with independent
// systems inside a phase fanned out across goroutines joined by a
// WaitGroup where their component access is disjoint.
func (r *Runtime) Step() {
	tickStart := time.Now()
	r.Metrics.StartTick()

	r.planningPhase()
	r.actionExecutionPhase()
	r.movementPhase()
	r.statsReproductionPhase()
	r.cleanupPhase()

	r.Metrics.EndTick()
	r.HealthMonitor.RecordTickDuration(r.Tick, time.Since(tickStart))
	r.Tick++
}

// planningPhase runs the trigger scans that schedule replans, drains
// the think queue, and evaluates the planner for each drained entity.
// RunFearTrigger and RunStatThresholdTrigger read disjoint component
// sets (FearState+BehaviorConfig vs. Hunger/Thirst/Energy/BehaviorConfig
// /ThresholdState) and only share the ThinkQueue as a write target, so
// they run concurrently — think.Queue.Schedule is mutex-guarded for
// exactly this reason.
func (r *Runtime) planningPhase() {
	r.Metrics.StartPhase(telemetry.PhasePlanning)

	r.refreshIdleSince()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		think.RunFearTrigger(r.World, r.ThinkQueue)
	}()
	go func() {
		defer wg.Done()
		think.RunStatThresholdTrigger(r.World, r.ThinkQueue)
	}()
	wg.Wait()

	think.RunActionCompletionTrigger(r.lastEventBatch, r.ThinkQueue)
	think.RunIdleFallback(r.World, r.ThinkQueue, r.Tick, uint64(config.Cfg().Think.IdleFallbackTicks))
	think.RunAggressiveIdleFallback(r.World, r.ThinkQueue, r.Tick, uint64(config.Cfg().Think.AggressiveFallbackTicks), r.idleSince)

	r.ThinkQueue.Drain(config.Cfg().Think.BudgetPerTick, func(e ecs.Entity, _ components.ReplanReason) {
		r.Planner.Plan(r.World, e, r.Tick)
	})
}

// refreshIdleSince keeps the idle-since bookkeeping in sync with
// whether each entity currently holds an ActiveAction: entities that
// just went idle are stamped with the current tick, entities that
// picked up an action are dropped from tracking.
func (r *Runtime) refreshIdleSince() {
	filter := ecs.NewFilter1[components.BehaviorConfig](r.World)
	activeMap := ecs.NewMap1[components.ActiveAction](r.World)
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		if activeMap.Has(e) {
			delete(r.idleSince, e)
			continue
		}
		if _, tracked := r.idleSince[e]; !tracked {
			r.idleSince[e] = r.Tick
		}
	}
}

// actionExecutionPhase advances every action state machine and drains
// the pathfinding queue the action phase just fed.
func (r *Runtime) actionExecutionPhase() {
	r.Metrics.StartPhase(telemetry.PhaseActionExecution)

	ctx := &actions.Context{
		Grid:       r.Grid,
		Vegetation: r.Vegetation,
		Spatial:    r.Spatial,
		PathQueue:  r.PathQueue,
		Bus:        r.Bus,
		Tick:       r.Tick,
	}
	actions.Advance(r.World, ctx)
	r.PathQueue.Drain(r.World, r.Grid, config.Cfg().Pathing.BudgetPerTick, r.Tick)
}

// movementPhase steps every entity following a path one tile closer,
// gated by its own MovementSpeed cadence.
func (r *Runtime) movementPhase() {
	r.Metrics.StartPhase(telemetry.PhaseMovement)
	actions.AdvanceMovement(r.World, r.Spatial)
}

// statsReproductionPhase advances metabolism, reproduction cooldowns
// and pregnancies, and the group formation/cohesion and stale-pair
// sweeps.
func (r *Runtime) statsReproductionPhase() {
	r.Metrics.StartPhase(telemetry.PhaseStatsReproduction)

	lifecycle.AdvanceMetabolism(r.World)
	lifecycle.UpdateWellFedStreak(r.World)
	lifecycle.AdvanceCooldowns(r.World)
	lifecycle.AdvancePregnancies(r.World, r.spawnAdjacent, r.Tick)

	relations.RunFormation(r.World, r.Spatial, r.Tick)
	relations.RunCohesion(r.World, r.Spatial)
	if r.Tick%pairSweepInterval == 0 {
		relations.SweepStalePairs(r.World)
	}
}

// cleanupPhase processes deaths and carcass decay, advances vegetation
// regrowth, runs the periodic invariant validator, and drains the event
// bus for the next tick's ActionCompleted trigger.
func (r *Runtime) cleanupPhase() {
	r.Metrics.StartPhase(telemetry.PhaseCleanup)

	r.recordDeathsForTelemetry()
	lifecycle.ProcessDeaths(r.World, r.Spatial, r.Bus)
	lifecycle.AdvanceCarcasses(r.World, r.Vegetation)
	r.Vegetation.Tick(r.Tick)

	interval := uint64(config.Cfg().Validator.IntervalTicks)
	if interval > 0 && r.Tick%interval == 0 {
		violations := world.ValidateEntities(r.World, r.Spatial)
		r.HealthMonitor.RecordViolations(r.Tick, violations)
	}

	batch := r.Bus.Drain()
	for _, e := range events.OfType(batch, events.ActionCompleted) {
		if !e.Success {
			r.Events.RecordActionFailure()
		}
	}

	if r.Events.ShouldFlush(r.Tick) {
		r.flushTelemetry()
	}

	r.lastEventBatch = batch
}

// recordDeathsForTelemetry scans Health <= 0 entities before
// ProcessDeaths destroys them, so the Collector can attribute each
// death to its species and flag starvation (hunger or thirst at/above
// its Urgent threshold) versus any other cause.
func (r *Runtime) recordDeathsForTelemetry() {
	filter := ecs.NewFilter4[components.Health, components.Species, components.Hunger, components.Thirst](r.World)
	query := filter.Query()
	behaviorMap := ecs.NewMap1[components.BehaviorConfig](r.World)
	for query.Next() {
		e := query.Entity()
		health, species, hunger, thirst := query.Get()
		if health.Value > 0 {
			continue
		}
		starved := false
		if behaviorMap.Has(e) {
			cfg := behaviorMap.Get(e)
			starved = hunger.Value >= cfg.HungerThresholdUrgent || thirst.Value >= cfg.ThirstThresholdUrgent
		}
		r.Events.RecordDeath(*species, starved)
	}
}

// flushTelemetry samples the current population and stat distribution,
// flushes the windowed Collector, and (if output is configured) writes
// both the telemetry and perf CSV records.
func (r *Runtime) flushTelemetry() {
	population := make(map[components.Species]int)
	var hungerSamples, energySamples []float64

	filter := ecs.NewFilter3[components.Species, components.Hunger, components.Energy](r.World)
	query := filter.Query()
	for query.Next() {
		species, hunger, energy := query.Get()
		population[*species]++
		hungerSamples = append(hungerSamples, float64(hunger.Value))
		energySamples = append(energySamples, float64(energy.Value))
	}

	stats := r.Events.Flush(r.Tick, population, hungerSamples, energySamples)
	perfStats := r.Metrics.Stats()

	if r.Output != nil {
		if err := r.Output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := r.Output.WritePerf(perfStats, r.Tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
