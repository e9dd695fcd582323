package components

// Carcass marks a despawned animal's remains, left behind at its death
// tile until it decays back into the vegetation grid. No action consumes
// carcasses; RemainingBiomass is only read when the carcass decays.
type Carcass struct {
	Species        Species
	RemainingBiomass float32
	DecayTicksLeft int32
}
