// Command ethosim runs the simulation headlessly: load a world pack,
// seed the population, and advance ticks until -max-ticks is reached
// (or forever), logging progress periodically. Adapted from the
// teacher's flag set and runHeadless loop with the graphics path
// dropped entirely (headless is the only mode this engine has).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pthm-cable/ethosim/config"
	"github.com/pthm-cable/ethosim/query"
	"github.com/pthm-cable/ethosim/sim"
	"github.com/pthm-cable/ethosim/telemetry"
	"github.com/pthm-cable/ethosim/world"
)

var (
	speed        = flag.Float64("speed", 1.0, "Simulation speed multiplier")
	maxTicks     = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run forever)")
	logInterval  = flag.Int("log", 0, "Log progress every N ticks (0 = time-based only)")
	logFile      = flag.String("logfile", "", "Write logs to file instead of stdout")
	worldPack    = flag.String("worldpack", "", "Directory containing the world pack to load")
	spawnConfig  = flag.String("spawnconfig", "", "Path to a YAML config overriding the embedded defaults")
	outputDir    = flag.String("output", "", "Directory to write telemetry.csv/perf.csv (empty disables output)")
	seed         = flag.Int64("seed", 1, "RNG seed for spawning and planner randomness")
	logWriter    *os.File
)

func logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		logWriter = f
		defer logWriter.Close()
	}

	config.MustInit(*spawnConfig)

	if *worldPack == "" {
		fmt.Fprintln(os.Stderr, "-worldpack is required")
		os.Exit(1)
	}
	cached, err := (world.Loader{}).Load(*worldPack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load world pack: %v\n", err)
		os.Exit(1)
	}

	runHeadless(cached)
}

func runHeadless(cached *world.CachedWorld) {
	logf("Starting headless simulation...")
	logf("  Speed: %.1fx, Max ticks: %d", *speed, *maxTicks)
	logf("")

	r := sim.NewRuntime(cached, *seed)
	r.SetSpeed(*speed)
	r.SeedPopulation()

	if *outputDir != "" {
		out, err := telemetry.NewOutputManager(*outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open output directory: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
		r.SetOutput(out)
	}

	startTime := time.Now()
	lastReport := startTime
	const reportInterval = 10 * time.Second

	for {
		if *maxTicks > 0 && int(r.Tick) >= *maxTicks {
			logf("Reached max ticks (%d), stopping.", *maxTicks)
			break
		}

		r.Step()

		if *logInterval > 0 && r.Tick%uint64(*logInterval) == 0 {
			snap := query.BuildSnapshot(r)
			logf("[TICK %d] population=%d", snap.Tick, snap.Population)
		}

		if time.Since(lastReport) >= reportInterval {
			elapsed := time.Since(startTime)
			ticksPerSec := float64(r.Tick) / elapsed.Seconds()
			logf("[PROGRESS] Tick %d | %.0f ticks/sec | Elapsed: %s", r.Tick, ticksPerSec, elapsed.Round(time.Second))
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(startTime)
	logf("")
	logf("Simulation complete.")
	logf("  Total ticks: %d", r.Tick)
	logf("  Elapsed time: %s", elapsed.Round(time.Millisecond))
	logf("  Average: %.0f ticks/sec", float64(r.Tick)/elapsed.Seconds())
}
