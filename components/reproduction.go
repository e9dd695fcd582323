package components

import "github.com/mlange-42/ark/ecs"

// ReproductionConfig holds species-tunable reproduction parameters.
type ReproductionConfig struct {
	CooldownTicks     int32
	PregnancyTicks    int32
	WellFedStreakReq  int32 // ticks below hunger-satiated threshold required before eligible
	SatiatedHunger    float32
	MinEnergy         float32
	LitterSize        int32
	MatingDwellTicks  int32 // ticks a pursuer dwells at the meeting tile before pregnancy is emitted
}

// DefaultReproductionConfig returns baseline reproduction tuning.
func DefaultReproductionConfig() ReproductionConfig {
	return ReproductionConfig{
		CooldownTicks:    300,
		PregnancyTicks:   150,
		WellFedStreakReq: 50,
		SatiatedHunger:   40,
		MinEnergy:        50,
		LitterSize:       1,
		MatingDwellTicks: 10,
	}
}

// ReproductionCooldown counts down after a completed mating (it is set on
// both partners) before the entity is eligible to mate again.
type ReproductionCooldown struct {
	TicksRemaining int32
}

// Pregnancy tracks a gestation timer on the female half of a mated pair.
type Pregnancy struct {
	Partner        ecs.Entity // the sire, for lineage bookkeeping
	TicksRemaining int32
}

// WellFedStreak counts consecutive ticks the entity's hunger has stayed
// below its ReproductionConfig.SatiatedHunger threshold.
type WellFedStreak struct {
	Ticks int32
}
