package telemetry

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ethosim/world"
)

// alertRingSize bounds how many alerts HealthMonitor retains; older
// alerts are overwritten, not lost to an unbounded log.
const alertRingSize = 200

// anomalyWindow is how many recent tick durations feed the rolling
// mean/stddev used to flag a performance anomaly.
const anomalyWindow = 100

// anomalyStdDevs is how many standard deviations above the rolling mean
// a tick duration must exceed to be flagged.
const anomalyStdDevs = 3.0

// minAnomalySamples avoids flagging anomalies before the rolling window
// has enough samples for a meaningful stddev.
const minAnomalySamples = 30

// Alert is one entry in the health monitor's ring buffer: a validator
// violation or a performance anomaly observed at a given tick.
type Alert struct {
	Tick   uint64
	Kind   string
	Detail string
}

// HealthMonitor watches tick-duration history for performance anomalies
// and records validator-sweep violations, both surfaced as a bounded
// ring buffer of Alerts (§7 error handling: performance anomalies +
// invariant violations).
type HealthMonitor struct {
	durations  []time.Duration
	alerts     []Alert
	alertWrite int
	alertCount int
}

// NewHealthMonitor creates an empty health monitor.
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		alerts: make([]Alert, alertRingSize),
	}
}

// RecordTickDuration feeds one tick's wall-clock duration into the
// rolling anomaly window, appending an Alert if it exceeds the rolling
// mean by more than anomalyStdDevs standard deviations.
func (h *HealthMonitor) RecordTickDuration(tick uint64, d time.Duration) {
	h.durations = append(h.durations, d)
	if len(h.durations) > anomalyWindow {
		h.durations = h.durations[len(h.durations)-anomalyWindow:]
	}
	if len(h.durations) < minAnomalySamples {
		return
	}

	values := make([]float64, len(h.durations))
	for i, dur := range h.durations {
		values[i] = float64(dur)
	}
	mean, stddev := stat.MeanStdDev(values, nil)
	latest := values[len(values)-1]
	if stddev > 0 && latest > mean+anomalyStdDevs*stddev {
		h.record(Alert{
			Tick:   tick,
			Kind:   "perf_anomaly",
			Detail: fmt.Sprintf("tick took %s, %.1f stddev above the %s rolling mean", d, (latest-mean)/stddev, time.Duration(mean)),
		})
	}
}

// RecordViolations appends one Alert per validator-sweep Violation.
func (h *HealthMonitor) RecordViolations(tick uint64, violations []world.Violation) {
	for _, v := range violations {
		h.record(Alert{Tick: tick, Kind: "invariant_violation", Detail: v.Detail})
	}
}

func (h *HealthMonitor) record(a Alert) {
	h.alerts[h.alertWrite] = a
	h.alertWrite = (h.alertWrite + 1) % alertRingSize
	if h.alertCount < alertRingSize {
		h.alertCount++
	}
}

// Alerts returns every alert currently held in the ring buffer, oldest
// first.
func (h *HealthMonitor) Alerts() []Alert {
	out := make([]Alert, 0, h.alertCount)
	if h.alertCount < alertRingSize {
		out = append(out, h.alerts[:h.alertCount]...)
		return out
	}
	out = append(out, h.alerts[h.alertWrite:]...)
	out = append(out, h.alerts[:h.alertWrite]...)
	return out
}
