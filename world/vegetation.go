package world

import "github.com/pthm-cable/ethosim/components"

// VegetationCell holds the sparse biomass state of a single tile.
type VegetationCell struct {
	Biomass            float32
	ConsumptionPressure float32
}

// VegetationGrid is a sparse per-tile biomass store with
// consumption-pressure tracking and event-scheduled regrowth (C5). Only
// cells with nonzero biomass (or pending regrowth) are stored; regrowth
// fires from a tick-bucketed event schedule rather than a per-tick scan
// of every cell.
type VegetationGrid struct {
	cells    map[components.Tile]*VegetationCell
	schedule map[uint64][]components.Tile

	cap            float32
	regrowthTicks  int32
	regrowthAmount float32
	pressureDecay  float32
}

// NewVegetationGrid creates an empty vegetation grid tuned by cfg.
func NewVegetationGrid(cap, regrowthAmount, pressureDecay float32, regrowthTicks int32) *VegetationGrid {
	return &VegetationGrid{
		cells:          make(map[components.Tile]*VegetationCell),
		schedule:       make(map[uint64][]components.Tile),
		cap:            cap,
		regrowthTicks:  regrowthTicks,
		regrowthAmount: regrowthAmount,
		pressureDecay:  pressureDecay,
	}
}

// Seed sets a tile's initial biomass, used when loading a world pack's
// vegetation coverage (e.g. derived from the grass/forest terrain
// layer). Zero biomass is a no-op (the cell simply stays unstored).
func (v *VegetationGrid) Seed(t components.Tile, biomass float32) {
	if biomass <= 0 {
		return
	}
	if biomass > v.cap {
		biomass = v.cap
	}
	v.cells[t] = &VegetationCell{Biomass: biomass}
}

// CellAt returns the cell at t, or nil if empty.
func (v *VegetationGrid) CellAt(t components.Tile) *VegetationCell {
	return v.cells[t]
}

// FindBestCellWithin returns the tile of the nearby cell with the
// highest biomass weighted inversely by distance, within Chebyshev
// radius of center. Returns ok=false if no cell qualifies.
func (v *VegetationGrid) FindBestCellWithin(center components.Tile, radius int32) (components.Tile, bool) {
	var best components.Tile
	bestScore := float32(-1)
	found := false

	for t, cell := range v.cells {
		if cell.Biomass <= 0 {
			continue
		}
		dist := t.ChebyshevDist(center)
		if dist > radius {
			continue
		}
		score := cell.Biomass / float32(1+dist)
		if score > bestScore {
			bestScore = score
			best = t
			found = true
		}
	}
	return best, found
}

// Consume reduces a cell's biomass by amount (clamped to what is
// available), raises its consumption pressure, and schedules a regrowth
// event regrowthTicks in the future. Returns the amount actually
// consumed, so callers can keep a conservation accounting (§8 invariant
// 9: biomass consumed by Graze equals biomass removed from the grid).
func (v *VegetationGrid) Consume(t components.Tile, amount float32, currentTick uint64) float32 {
	cell := v.cells[t]
	if cell == nil || cell.Biomass <= 0 {
		return 0
	}
	taken := amount
	if taken > cell.Biomass {
		taken = cell.Biomass
	}
	cell.Biomass -= taken
	cell.ConsumptionPressure += taken / v.cap
	if cell.ConsumptionPressure > 1 {
		cell.ConsumptionPressure = 1
	}

	due := currentTick + uint64(v.regrowthTicks)
	v.schedule[due] = append(v.schedule[due], t)
	return taken
}

// Fertilize adds biomass directly to a cell (e.g. from carcass decay),
// bounded by cap. Used by the carcass/vegetation interaction described
// in SPEC_FULL.md.
func (v *VegetationGrid) Fertilize(t components.Tile, amount float32) {
	cell := v.cells[t]
	if cell == nil {
		cell = &VegetationCell{}
		v.cells[t] = cell
	}
	cell.Biomass += amount
	if cell.Biomass > v.cap {
		cell.Biomass = v.cap
	}
}

// Tick fires any regrowth events due at currentTick. Only cells with a
// scheduled event are touched; there is no scan of the whole grid.
func (v *VegetationGrid) Tick(currentTick uint64) {
	due, ok := v.schedule[currentTick]
	if !ok {
		return
	}
	delete(v.schedule, currentTick)

	for _, t := range due {
		cell := v.cells[t]
		if cell == nil {
			continue
		}
		cell.Biomass += v.regrowthAmount
		if cell.Biomass > v.cap {
			cell.Biomass = v.cap
		}
		cell.ConsumptionPressure -= v.pressureDecay
		if cell.ConsumptionPressure < 0 {
			cell.ConsumptionPressure = 0
		}
		// Still below cap: schedule another
		// regrowth pass so the cell keeps recovering.
		if cell.Biomass < v.cap {
			nextDue := currentTick + uint64(v.regrowthTicks)
			v.schedule[nextDue] = append(v.schedule[nextDue], t)
		}
	}
}

// Cap returns the per-cell biomass capacity.
func (v *VegetationGrid) Cap() float32 { return v.cap }
