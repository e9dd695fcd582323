package telemetry

import (
	"testing"

	"github.com/pthm-cable/ethosim/components"
)

func TestCollectorFlushAggregatesBirthsDeathsAndStarvation(t *testing.T) {
	c := NewCollector(10)

	c.RecordBirth(components.Rabbit)
	c.RecordBirth(components.Rabbit)
	c.RecordDeath(components.Wolf, true)
	c.RecordDeath(components.Fox, false)
	c.RecordActionFailure()

	stats := c.Flush(10, map[components.Species]int{components.Rabbit: 3}, []float64{10, 20, 30}, []float64{60, 70, 80})

	if stats.Births != 2 {
		t.Errorf("expected 2 births, got %d", stats.Births)
	}
	if stats.Deaths != 2 {
		t.Errorf("expected 2 deaths, got %d", stats.Deaths)
	}
	if stats.StarvationDeaths != 1 {
		t.Errorf("expected 1 starvation death, got %d", stats.StarvationDeaths)
	}
	if stats.ActionFailures != 1 {
		t.Errorf("expected 1 action failure, got %d", stats.ActionFailures)
	}
	if stats.HungerMean != 20 {
		t.Errorf("expected hunger mean 20, got %v", stats.HungerMean)
	}
	if stats.EnergyMean != 70 {
		t.Errorf("expected energy mean 70, got %v", stats.EnergyMean)
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(10)
	c.RecordBirth(components.Deer)
	c.Flush(5, nil, nil, nil)

	stats := c.Flush(10, nil, nil, nil)
	if stats.Births != 0 {
		t.Errorf("expected counters reset after flush, got %d births", stats.Births)
	}
}

func TestCollectorShouldFlushRespectsWindowDuration(t *testing.T) {
	c := NewCollector(10)
	if c.ShouldFlush(5) {
		t.Error("expected no flush before window elapses")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush once window elapses")
	}
}

func TestMeanAndMedianEmptyInput(t *testing.T) {
	mean, median := meanAndMedian(nil)
	if mean != 0 || median != 0 {
		t.Errorf("expected (0, 0) for empty input, got (%v, %v)", mean, median)
	}
}
