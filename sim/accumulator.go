package sim

import "time"

// tickPeriod is the wall-clock duration of one simulation tick at 1x
// speed (§4.1: a fixed 10Hz heartbeat).
const tickPeriod = 100 * time.Millisecond

// Accumulator converts elapsed wall-clock time into a whole number of
// simulation ticks to run, the way a fixed-timestep game loop avoids
// coupling simulation speed to frame rate. Generalized from the
// teacher's stepsPerFrame (a flat N-steps-per-Update count) to a real
// time-accumulator so Speed.Multiplier scales real time, not just step
// count, and Paused can stop ticking without losing accumulated time.
type Accumulator struct {
	remainder time.Duration
}

// Advance folds elapsed wall-clock time into the accumulator, scaled by
// speed.Multiplier, and returns how many whole ticks are now due. A
// speed.Multiplier <= 0 is treated as 1x. Paused discards elapsed time
// entirely, so resuming does not burst-fire queued ticks.
func (a *Accumulator) Advance(elapsed time.Duration, speed Speed) int {
	if speed.Paused {
		return 0
	}
	mult := speed.Multiplier
	if mult <= 0 {
		mult = 1
	}
	scaled := time.Duration(float64(elapsed) * mult)
	a.remainder += scaled

	ticks := 0
	for a.remainder >= tickPeriod {
		a.remainder -= tickPeriod
		ticks++
	}
	return ticks
}

// Reset clears any accumulated partial-tick time, so a single huge
// Advance after it can't fire a storm of catch-up ticks. Runtime.Resume
// does not call it.
func (a *Accumulator) Reset() {
	a.remainder = 0
}
