package think

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/events"
)

// RunFearTrigger schedules Urgent replans for any entity whose fear
// level has crossed the species' fear threshold while predators are
// nearby (§4.6).
func RunFearTrigger(w *ecs.World, q *Queue) {
	filter := ecs.NewFilter2[components.FearState, components.BehaviorConfig](w)
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		fear, cfg := query.Get()
		if fear.NearbyPredators > 0 && fear.Level > cfg.FearThreshold {
			q.Schedule(e, components.ReasonFearTriggered)
		}
	}
}

// RunStatThresholdTrigger schedules replans on the edge-triggered
// crossing of hunger/thirst/energy thresholds, tracked per-entity by
// ThresholdState so a stat sitting above threshold does not reschedule
// every tick (§4.6).
func RunStatThresholdTrigger(w *ecs.World, q *Queue) {
	filter := ecs.NewFilter5[components.Hunger, components.Thirst, components.Energy, components.BehaviorConfig, components.ThresholdState](w)
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		hunger, thirst, energy, cfg, state := query.Get()

		hungerUrgent := hunger.Value >= cfg.HungerThresholdUrgent
		hungerNormal := hunger.Value >= cfg.HungerThresholdNormal
		thirstUrgent := thirst.Value >= cfg.ThirstThresholdUrgent
		thirstNormal := thirst.Value >= cfg.ThirstThresholdNormal
		energyUrgent := energy.Value <= cfg.EnergyThresholdUrgent

		if hungerUrgent && !state.HungerUrgent {
			q.Schedule(e, components.ReasonHungerCritical)
		} else if hungerNormal && !state.HungerNormal {
			q.Schedule(e, components.ReasonHungerModerate)
		}
		if thirstUrgent && !state.ThirstUrgent {
			q.Schedule(e, components.ReasonThirstCritical)
		} else if thirstNormal && !state.ThirstNormal {
			q.Schedule(e, components.ReasonThirstModerate)
		}
		if energyUrgent && !state.EnergyUrgent {
			q.Schedule(e, components.ReasonEnergyCritical)
		}

		state.HungerUrgent = hungerUrgent
		state.HungerNormal = hungerNormal
		state.ThirstUrgent = thirstUrgent
		state.ThirstNormal = thirstNormal
		state.EnergyUrgent = energyUrgent
	}
}

// RunActionCompletionTrigger schedules a Normal replan for every entity
// named in an ActionCompleted event drained this tick.
func RunActionCompletionTrigger(batch []events.Event, q *Queue) {
	for _, e := range events.OfType(batch, events.ActionCompleted) {
		q.Schedule(e.Entity, components.ReasonActionCompleted)
	}
}

// RunIdleFallback schedules a Low replan every idleFallbackInterval
// ticks for any entity with neither an ActiveAction nor a pending think
// request (§4.6).
func RunIdleFallback(w *ecs.World, q *Queue, tick uint64, idleFallbackInterval uint64) {
	if idleFallbackInterval == 0 || tick%idleFallbackInterval != 0 {
		return
	}
	filter := ecs.NewFilter1[components.BehaviorConfig](w).Without(ecs.C[components.ActiveAction]())
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		if q.Pending(e) {
			continue
		}
		q.Schedule(e, components.ReasonIdle)
	}
}

// RunAggressiveIdleFallback force-schedules any entity that has been
// idle (no ActiveAction) for longer than its species' idle threshold.
// The Without[ActiveAction] filter is mandatory: applying this to an
// entity mid-action would cancel a multi-tick action and livelock the
// simulation (§9).
func RunAggressiveIdleFallback(w *ecs.World, q *Queue, tick uint64, aggressiveInterval uint64, idleSince map[ecs.Entity]uint64) {
	if aggressiveInterval == 0 || tick%aggressiveInterval != 0 {
		return
	}
	filter := ecs.NewFilter1[components.BehaviorConfig](w).Without(ecs.C[components.ActiveAction]())
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		cfg := query.Get()
		since, ok := idleSince[e]
		if !ok {
			continue
		}
		if tick-since > uint64(cfg.IdleThresholdTicks) {
			q.Schedule(e, components.ReasonIdle)
		}
	}
}
