package actions

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
	"github.com/pthm-cable/ethosim/relations"
)

func init() {
	registerEffect(components.ActionMate, mateEffect)
}

// mateEffect dwells at the meeting tile for cfg.MatingDwellTicks before
// completing (§4.10). On completion it emits Pregnancy on the female
// half of the pair and clears the ActiveMate/MatingTarget bond; pair
// bookkeeping otherwise belongs to the relations package, but the
// terminal transition is the action's own responsibility since it alone
// knows the dwell finished.
func mateEffect(w *ecs.World, ctx *Context, e ecs.Entity, active *components.ActiveAction) bool {
	repMap := ecs.NewMap1[components.ReproductionConfig](w)
	activeMateMap := ecs.NewMap1[components.ActiveMate](w)
	if !repMap.Has(e) || !activeMateMap.Has(e) {
		return true
	}
	cfg := repMap.Get(e)
	bond := activeMateMap.Get(e)

	active.DwellTicks++
	if active.DwellTicks < cfg.MatingDwellTicks {
		return false
	}

	partner := bond.Partner
	completeMating(w, e, partner)
	return true
}

func completeMating(w *ecs.World, suitor, partner ecs.Entity) {
	sexMap := ecs.NewMap1[components.Sex](w)
	female, male := suitor, partner
	if sexMap.Has(suitor) && *sexMap.Get(suitor) == components.Male {
		female, male = partner, suitor
	}

	pregMap := ecs.NewMap1[components.Pregnancy](w)
	repCfgMap := ecs.NewMap1[components.ReproductionConfig](w)
	if repCfgMap.Has(female) {
		pregMap.Add(female, &components.Pregnancy{
			Partner:        male,
			TicksRemaining: repCfgMap.Get(female).PregnancyTicks,
		})
	}

	cooldownMap := ecs.NewMap1[components.ReproductionCooldown](w)
	for _, who := range []ecs.Entity{female, male} {
		if repCfgMap.Has(who) {
			cooldownMap.Add(who, &components.ReproductionCooldown{TicksRemaining: repCfgMap.Get(who).CooldownTicks})
		}
	}

	relations.ClearMate(w, suitor, partner)
}
