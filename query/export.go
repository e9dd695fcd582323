package query

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// entityRow is the flat CSV row shape for one EntitySummary in an
// exported snapshot series, grounded on telemetry.OutputManager's
// header-once gocsv.Marshal pattern.
type entityRow struct {
	Tick    uint64  `csv:"tick"`
	ID      uint32  `csv:"id"`
	Species string  `csv:"species"`
	TileX   int32   `csv:"tile_x"`
	TileY   int32   `csv:"tile_y"`
	Hunger  float32 `csv:"hunger"`
	Thirst  float32 `csv:"thirst"`
	Energy  float32 `csv:"energy"`
	Health  float32 `csv:"health"`
}

// Exporter accumulates Snapshots and writes them as a single flat CSV,
// one row per entity per snapshot, for offline analysis outside the
// running process (§6: gocsv dump, not a server).
type Exporter struct {
	rows []entityRow
}

// NewExporter creates an empty exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Add appends every entity in snap as one CSV row.
func (ex *Exporter) Add(snap Snapshot) {
	for _, e := range snap.Entities {
		ex.rows = append(ex.rows, entityRow{
			Tick:    snap.Tick,
			ID:      e.ID,
			Species: e.Species,
			TileX:   e.TileX,
			TileY:   e.TileY,
			Hunger:  e.Hunger,
			Thirst:  e.Thirst,
			Energy:  e.Energy,
			Health:  e.Health,
		})
	}
}

// WriteCSV writes every accumulated row to path as a single CSV file.
func (ex *Exporter) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(ex.rows, f); err != nil {
		return fmt.Errorf("writing export csv: %w", err)
	}
	return nil
}

// Len returns the number of accumulated rows.
func (ex *Exporter) Len() int {
	return len(ex.rows)
}
