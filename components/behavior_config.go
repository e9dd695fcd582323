package components

// BehaviorConfig holds species-tunable thresholds driving the planner and
// action state machines. Required on every AI-driven entity; species
// spawn entry points (see sim.Runtime.SpawnSpecies) attach it as part of
// the atomic required-component bundle.
type BehaviorConfig struct {
	HungerThresholdUrgent float32 // hunger >= this -> Urgent think
	HungerThresholdNormal float32 // hunger >= this -> Normal think
	ThirstThresholdUrgent float32
	ThirstThresholdNormal float32
	EnergyThresholdUrgent float32 // energy <= this -> Urgent think

	FoodSearchRadius   int32
	WaterSearchRadius  int32
	WanderRadius       int32
	MatingSearchRadius int32
	HuntSearchRadius   int32
	SightRadius        int32 // radius Flee scans for the nearest predator

	FearThreshold float32 // fear_level above this, with nearby_predators > 0, is Urgent

	IdleThresholdTicks int32 // ticks without ActiveAction before aggressive force-replan

	GrazeAmount float32 // biomass requested per Graze completion; hunger drops by the amount actually consumed
	DrinkAmount float32 // thirst reduced per DrinkWater completion
	RestRate    float32 // energy gained per tick while Resting
	RestTarget  float32 // energy level at which Rest terminates

	HuntDamage           float32 // health damage dealt per Hunt contact
	HuntRecomputeTiles   int32   // prey displacement threshold before Hunt re-targets
	PreemptionMargin     float32 // utility delta required to preempt a running action

	HungerRate      float32 // hunger gained per tick (metabolism)
	ThirstRate      float32 // thirst gained per tick
	EnergyDrainRate float32 // energy lost per tick outside of Rest
	StarveDamage    float32 // health lost per tick while hunger or thirst is at/above its Urgent threshold
}

// DefaultBehaviorConfig returns baseline thresholds common to most
// species; species-specific callers adjust fields after copying this.
func DefaultBehaviorConfig() BehaviorConfig {
	return BehaviorConfig{
		HungerThresholdUrgent: 80,
		HungerThresholdNormal: 50,
		ThirstThresholdUrgent: 80,
		ThirstThresholdNormal: 50,
		EnergyThresholdUrgent: 20,

		FoodSearchRadius:   20,
		WaterSearchRadius:  25,
		WanderRadius:       8,
		MatingSearchRadius: 15,
		HuntSearchRadius:   20,
		SightRadius:        12,

		FearThreshold: 0.3,

		IdleThresholdTicks: 40,

		GrazeAmount: 30,
		DrinkAmount: 40,
		RestRate:    2,
		RestTarget:  90,

		HuntDamage:         25,
		HuntRecomputeTiles: 3,
		PreemptionMargin:   0.15,

		HungerRate:      0.15,
		ThirstRate:      0.2,
		EnergyDrainRate: 0.05,
		StarveDamage:    0.5,
	}
}
