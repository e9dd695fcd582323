package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ethosim/components"
)

// Collector accumulates birth/death/action-failure events within a
// tick window and produces a WindowStats snapshot, generalized from the
// teacher's prey/predator bite-and-birth counters to the species-keyed
// events this simulation emits.
type Collector struct {
	windowDurationTicks uint64
	windowStartTick     uint64

	births           map[components.Species]int
	deaths           map[components.Species]int
	starvationDeaths int
	actionFailures   int
}

// NewCollector creates a collector flushing every windowDurationTicks
// simulation ticks.
func NewCollector(windowDurationTicks ...uint64) *Collector {
	window := uint64(600)
	if len(windowDurationTicks) > 0 && windowDurationTicks[0] > 0 {
		window = windowDurationTicks[0]
	}
	return &Collector{
		windowDurationTicks: window,
		births:              make(map[components.Species]int),
		deaths:              make(map[components.Species]int),
	}
}

// RecordBirth records a birth event for species.
func (c *Collector) RecordBirth(species components.Species) {
	c.births[species]++
}

// RecordDeath records a death event for species. starvation marks
// whether the death was metabolism-driven (Hunger/Thirst-starved health
// loss) rather than predation, tracked separately for the starvation
// rate metric.
func (c *Collector) RecordDeath(species components.Species, starvation bool) {
	c.deaths[species]++
	if starvation {
		c.starvationDeaths++
	}
}

// RecordActionFailure records an action that terminated in
// ActionPhase::Failed rather than Done.
func (c *Collector) RecordActionFailure() {
	c.actionFailures++
}

// ShouldFlush reports whether the current window has elapsed.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WindowDurationTicks returns the configured window length in ticks.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}

// SpeciesCount pairs a species with a count, used for the per-species
// breakdown carried on WindowStats (not CSV-exported; logging only).
type SpeciesCount struct {
	Species components.Species
	Count   int
}

// WindowStats holds aggregated statistics for one flush window.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`

	Population       int `csv:"population"`
	Births           int `csv:"births"`
	Deaths           int `csv:"deaths"`
	StarvationDeaths int `csv:"starvation_deaths"`
	ActionFailures   int `csv:"action_failures"`

	HungerMean float64 `csv:"hunger_mean"`
	HungerP50  float64 `csv:"hunger_p50"`
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP50  float64 `csv:"energy_p50"`

	BirthsBySpecies     []SpeciesCount `csv:"-"`
	DeathsBySpecies     []SpeciesCount `csv:"-"`
	PopulationBySpecies []SpeciesCount `csv:"-"`
}

// Flush produces a WindowStats from the accumulated counters and the
// caller-supplied population snapshot (current per-species counts and
// sampled hunger/energy values), then resets counters for the next
// window.
func (c *Collector) Flush(currentTick uint64, populationBySpecies map[components.Species]int, hungerSamples, energySamples []float64) WindowStats {
	hungerMean, hungerP50 := meanAndMedian(hungerSamples)
	energyMean, energyP50 := meanAndMedian(energySamples)

	totalPop := 0
	var popBreakdown []SpeciesCount
	for _, species := range components.AllSpecies {
		n := populationBySpecies[species]
		totalPop += n
		popBreakdown = append(popBreakdown, SpeciesCount{Species: species, Count: n})
	}

	totalBirths, totalDeaths := 0, 0
	var birthBreakdown, deathBreakdown []SpeciesCount
	for _, species := range components.AllSpecies {
		b, d := c.births[species], c.deaths[species]
		totalBirths += b
		totalDeaths += d
		birthBreakdown = append(birthBreakdown, SpeciesCount{Species: species, Count: b})
		deathBreakdown = append(deathBreakdown, SpeciesCount{Species: species, Count: d})
	}

	stats := WindowStats{
		WindowStartTick:     c.windowStartTick,
		WindowEndTick:       currentTick,
		Population:          totalPop,
		Births:              totalBirths,
		Deaths:              totalDeaths,
		StarvationDeaths:    c.starvationDeaths,
		ActionFailures:      c.actionFailures,
		HungerMean:          hungerMean,
		HungerP50:           hungerP50,
		EnergyMean:          energyMean,
		EnergyP50:           energyP50,
		BirthsBySpecies:     birthBreakdown,
		DeathsBySpecies:     deathBreakdown,
		PopulationBySpecies: popBreakdown,
	}

	c.windowStartTick = currentTick
	c.births = make(map[components.Species]int)
	c.deaths = make(map[components.Species]int)
	c.starvationDeaths = 0
	c.actionFailures = 0

	return stats
}

// meanAndMedian returns the mean and 50th-percentile of values, or
// (0, 0) if values is empty.
func meanAndMedian(values []float64) (mean, median float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mean = stat.Mean(sorted, nil)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, median
}
