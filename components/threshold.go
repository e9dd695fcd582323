package components

// ThresholdState remembers which stat thresholds were already crossed
// as of the last tick, so the think-trigger system can schedule a
// replan on the transition only, not every tick the stat stays high
// (§4.6).
type ThresholdState struct {
	HungerUrgent bool
	HungerNormal bool
	ThirstUrgent bool
	ThirstNormal bool
	EnergyUrgent bool
}
