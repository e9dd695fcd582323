package world

import (
	"testing"

	"github.com/pthm-cable/ethosim/components"
)

func TestVegetationConsumeReducesBiomass(t *testing.T) {
	v := NewVegetationGrid(100, 15, 0.1, 40)
	tile := components.Tile{X: 2, Y: 2}
	v.Seed(tile, 50)

	taken := v.Consume(tile, 20, 0)
	if taken != 20 {
		t.Fatalf("expected to consume 20, got %v", taken)
	}
	if v.CellAt(tile).Biomass != 30 {
		t.Fatalf("expected remaining biomass 30, got %v", v.CellAt(tile).Biomass)
	}
}

func TestVegetationConsumeClampsToAvailable(t *testing.T) {
	v := NewVegetationGrid(100, 15, 0.1, 40)
	tile := components.Tile{X: 0, Y: 0}
	v.Seed(tile, 5)

	taken := v.Consume(tile, 20, 0)
	if taken != 5 {
		t.Fatalf("expected to consume only available 5, got %v", taken)
	}
	if v.CellAt(tile).Biomass != 0 {
		t.Fatalf("expected biomass exhausted, got %v", v.CellAt(tile).Biomass)
	}
}

func TestVegetationRegrowsAfterScheduledTicks(t *testing.T) {
	v := NewVegetationGrid(100, 15, 0.1, 10)
	tile := components.Tile{X: 1, Y: 1}
	v.Seed(tile, 50)
	v.Consume(tile, 30, 0)

	for tick := uint64(1); tick < 10; tick++ {
		v.Tick(tick)
	}
	if v.CellAt(tile).Biomass != 20 {
		t.Fatalf("expected no regrowth before due tick, got %v", v.CellAt(tile).Biomass)
	}

	v.Tick(10)
	if v.CellAt(tile).Biomass != 35 {
		t.Fatalf("expected regrowth to add 15, got %v", v.CellAt(tile).Biomass)
	}
}

func TestVegetationFindBestCellPrefersCloserHigherBiomass(t *testing.T) {
	v := NewVegetationGrid(100, 15, 0.1, 40)
	near := components.Tile{X: 1, Y: 0}
	far := components.Tile{X: 5, Y: 0}
	v.Seed(near, 40)
	v.Seed(far, 90)

	best, ok := v.FindBestCellWithin(components.Tile{X: 0, Y: 0}, 10)
	if !ok {
		t.Fatalf("expected a cell to be found")
	}
	if best != near {
		t.Fatalf("expected nearer cell %v to win over distant higher biomass, got %v", near, best)
	}
}

func TestVegetationFindBestCellRespectsRadius(t *testing.T) {
	v := NewVegetationGrid(100, 15, 0.1, 40)
	tile := components.Tile{X: 20, Y: 20}
	v.Seed(tile, 50)

	_, ok := v.FindBestCellWithin(components.Tile{X: 0, Y: 0}, 5)
	if ok {
		t.Fatalf("expected no cell within radius")
	}
}

func TestVegetationFertilizeBoundedByCap(t *testing.T) {
	v := NewVegetationGrid(100, 15, 0.1, 40)
	tile := components.Tile{X: 0, Y: 0}
	v.Seed(tile, 95)
	v.Fertilize(tile, 20)

	if v.CellAt(tile).Biomass != 100 {
		t.Fatalf("expected biomass capped at 100, got %v", v.CellAt(tile).Biomass)
	}
}
