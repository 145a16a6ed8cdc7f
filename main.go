package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logEvents := flag.Bool("log-events", false, "Output every world event via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	dt := flag.Float64("dt", 0, "Headless step size in seconds (0 = use config)")
	capRate := flag.Float64("cap-rate", 0, "Market cap added per simulated second")
	volumeRate := flag.Float64("volume-rate", 0, "Volume added per simulated second")
	buyerRate := flag.Float64("buyer-rate", 0, "Buyers added per simulated second")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		LogEvents:      *logEvents,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	sim, err := game.NewSimulation(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sim.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	ramp := economyRamp{CapRate: *capRate, VolumeRate: *volumeRate, BuyerRate: *buyerRate}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		stepDT := cfg.Sim.DefaultDT
		if *dt > 0 {
			stepDT = *dt
		}

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"dt", stepDT,
			"max_ticks", *maxTicks,
			"cap_rate", ramp.CapRate,
			"volume_rate", ramp.VolumeRate,
			"buyer_rate", ramp.BuyerRate,
		)

		for {
			ramp.Apply(sim, stepDT)
			sim.Step(stepDT)

			if *maxTicks > 0 && int(sim.Tick()) >= *maxTicks {
				slog.Info("max ticks reached",
					"tick", sim.Tick(),
					"colonies", sim.Registry().Len(),
					"worms", sim.Registry().TotalWorms(),
				)
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Worm Soup")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := newViewer(cfg, sim, rngSeed)
	defer v.Unload()

	for !rl.WindowShouldClose() {
		ramp.Apply(sim, float64(rl.GetFrameTime()))
		v.Update()
		v.Draw()

		if *maxTicks > 0 && int(sim.Tick()) >= *maxTicks {
			break
		}
	}
}
