package actions

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ethosim/components"
)

func TestMateEffectDwellsThenCompletesAndEmitsPregnancy(t *testing.T) {
	w := ecs.NewWorld()
	ctx := newTestContext()

	female := spawnAnimal(w, components.Rabbit, components.Tile{X: 0, Y: 0})
	male := spawnAnimal(w, components.Rabbit, components.Tile{X: 0, Y: 1})

	sexMap := ecs.NewMap1[components.Sex](w)
	femaleSex, maleSex := components.Female, components.Male
	sexMap.Add(female, &femaleSex)
	sexMap.Add(male, &maleSex)

	repCfg := components.DefaultReproductionConfig()
	repCfg.MatingDwellTicks = 2
	repMap := ecs.NewMap1[components.ReproductionConfig](w)
	repMap.Add(female, &repCfg)
	repMap.Add(male, &repCfg)

	meetingTile := components.Tile{X: 0, Y: 0}
	ecs.NewMap1[components.ActiveMate](w).Add(female, &components.ActiveMate{Partner: male, MeetingTile: meetingTile})
	ecs.NewMap1[components.MatingTarget](w).Add(male, &components.MatingTarget{Suitor: female, MeetingTile: meetingTile})

	active := &components.ActiveAction{Kind: components.ActionMate}

	if mateEffect(w, ctx, female, active) {
		t.Fatalf("expected mating not to complete before the dwell elapses")
	}
	if !mateEffect(w, ctx, female, active) {
		t.Fatalf("expected mating to complete once the dwell elapses")
	}

	if !ecs.NewMap1[components.Pregnancy](w).Has(female) {
		t.Fatalf("expected Pregnancy on the female")
	}
	if ecs.NewMap1[components.Pregnancy](w).Get(female).Partner != male {
		t.Fatalf("expected pregnancy partner to be the male")
	}
	if ecs.NewMap1[components.ActiveMate](w).Has(female) {
		t.Fatalf("expected ActiveMate cleared from female")
	}
	if ecs.NewMap1[components.MatingTarget](w).Has(male) {
		t.Fatalf("expected MatingTarget cleared from male")
	}
	if !ecs.NewMap1[components.ReproductionCooldown](w).Has(female) {
		t.Fatalf("expected cooldown applied to female")
	}
	if !ecs.NewMap1[components.ReproductionCooldown](w).Has(male) {
		t.Fatalf("expected cooldown applied to male")
	}
}
