package query

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExporterWriteCSVProducesOneRowPerEntity(t *testing.T) {
	ex := NewExporter()
	ex.Add(Snapshot{
		Tick: 10,
		Entities: []EntitySummary{
			{ID: 1, Species: "Rabbit", TileX: 1, TileY: 1, Hunger: 20, Energy: 80},
			{ID: 2, Species: "Wolf", TileX: 5, TileY: 5, Hunger: 30, Energy: 70},
		},
	})
	if ex.Len() != 2 {
		t.Fatalf("expected 2 accumulated rows, got %d", ex.Len())
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	if err := ex.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty export file")
	}
}
