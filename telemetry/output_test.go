package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewOutputManagerEmptyDirDisablesOutput(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatalf("expected nil OutputManager for empty dir")
	}
	// nil-receiver methods must be safe no-ops.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Fatalf("expected nil WriteTelemetry to no-op, got %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Fatalf("expected nil WritePerf to no-op, got %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("expected nil Close to no-op, got %v", err)
	}
}

func TestOutputManagerWritesTelemetryAndPerfCSVWithHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 10, Population: 5}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 20, Population: 6}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 10); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}

	telemetryData, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	if len(telemetryData) == 0 {
		t.Fatalf("expected non-empty telemetry.csv")
	}

	perfData, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	if len(perfData) == 0 {
		t.Fatalf("expected non-empty perf.csv")
	}
}
