package components

// clampStat bounds a stat scalar to [0, 100].
func clampStat(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Hunger is a bounded [0,100] scalar; higher means hungrier.
type Hunger struct{ Value float32 }

// Add adjusts the value by delta, clamping to [0,100].
func (h *Hunger) Add(delta float32) { h.Value = clampStat(h.Value + delta) }

// Thirst is a bounded [0,100] scalar; higher means thirstier.
type Thirst struct{ Value float32 }

// Add adjusts the value by delta, clamping to [0,100].
func (t *Thirst) Add(delta float32) { t.Value = clampStat(t.Value + delta) }

// Energy is a bounded [0,100] scalar; higher is better (more rested).
type Energy struct{ Value float32 }

// Add adjusts the value by delta, clamping to [0,100].
func (e *Energy) Add(delta float32) { e.Value = clampStat(e.Value + delta) }

// Health is a bounded [0,100] scalar; higher is better; <= 0 triggers
// death.
type Health struct{ Value float32 }

// Add adjusts the value by delta, clamping to [0,100].
func (h *Health) Add(delta float32) { h.Value = clampStat(h.Value + delta) }
