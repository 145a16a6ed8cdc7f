// Package game owns the simulation aggregate: the single-writer step, the
// control surface, snapshots and the telemetry hooks.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/systems"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// Options configures a simulation.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // Log window stats and bookmarks via slog
	LogEvents      bool    // Log every bus event via slog
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // CSV, config and snapshot output ("" = disabled)
	SnapshotDir    string  // Bookmark snapshots ("" = under OutputDir, if set)
	PerfWindow     int     // Ticks averaged by the perf collector (0 = reference fps)
}

// Simulation holds the complete simulation state. Step is the only writer;
// the control surface methods run between steps on the same goroutine.
type Simulation struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	world    *ecs.World
	registry *systems.ColonyRegistry

	shockwaves *systems.ShockwaveSystem
	steering   *systems.SteeringSystem
	chain      *systems.ChainSystem
	population *systems.PopulationSystem
	mutation   *systems.MutationSystem
	boss       *systems.BossSystem

	econ     systems.EconomyState
	growth   float64
	selected int

	tick int64
	time float64

	bus       *telemetry.Bus
	events    *telemetry.EventLog
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	pending   []telemetry.Event

	logStats    bool
	snapshotDir string
	onStats     func(telemetry.WindowStats)
}

// NewSimulation creates a simulation with a single founding colony.
func NewSimulation(cfg *config.Config, opts Options) (*Simulation, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}
	perfWindow := opts.PerfWindow
	if perfWindow <= 0 {
		perfWindow = int(cfg.Sim.ReferenceFPS)
	}
	snapshotDir := opts.SnapshotDir
	if snapshotDir == "" && output != nil {
		snapshotDir = filepath.Join(output.Dir(), "snapshots")
	}

	s := &Simulation{
		cfg:         cfg,
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
		world:       ecs.NewWorld(),
		bus:         telemetry.NewBus(),
		events:      telemetry.NewEventLog(cfg.Telemetry.EventLogSize),
		collector:   telemetry.NewCollector(windowSec),
		perf:        telemetry.NewPerfCollector(perfWindow),
		bookmarks:   telemetry.NewBookmarkDetector(10),
		output:      output,
		logStats:    opts.LogStats,
		snapshotDir: snapshotDir,
	}

	s.bus.Subscribe(s.events.Record)
	s.collector.Attach(s.bus)
	if output != nil {
		s.bus.Subscribe(func(e telemetry.Event) { s.pending = append(s.pending, e) })
	}
	if opts.LogEvents {
		s.bus.Subscribe(logEvent)
	}

	s.registry = systems.NewColonyRegistry(s.world, cfg, s.rng)
	s.shockwaves = systems.NewShockwaveSystem(cfg)
	s.steering = systems.NewSteeringSystem(s.world, cfg)
	s.chain = systems.NewChainSystem(s.world, cfg)
	s.population = systems.NewPopulationSystem(cfg, s.registry, s.shockwaves, s.bus)
	s.mutation = systems.NewMutationSystem(cfg, s.registry, s.shockwaves, s.bus)
	s.boss = systems.NewBossSystem(cfg, s.registry, s.steering, s.shockwaves, s.bus)

	s.bus.Emit(telemetry.Event{
		Kind:   telemetry.KindEvent,
		Colony: -1,
		Text:   fmt.Sprintf("colony 0 founded with %d worms", s.registry.TotalWorms()),
	})

	slog.Debug("simulation created", "seed", seed, "worms", s.registry.TotalWorms())
	return s, nil
}

// Step advances the simulation by dt seconds. dt is capped at sim.max_dt;
// a non-positive dt is a no-op.
func (s *Simulation) Step(dt float64) {
	if dt > s.cfg.Sim.MaxDT {
		dt = s.cfg.Sim.MaxDT
	}
	if dt <= 0 {
		return
	}

	s.perf.StartTick()
	s.bus.SetClock(s.tick, s.time)

	s.perf.StartPhase(telemetry.PhaseEconomy)
	s.registry.Drift(dt, s.rng)
	s.growth = s.econ.GrowthScore(s.cfg.Economy)
	s.population.TrySplit(s.econ, s.growth, s.rng)
	s.boss.EnsureBoss(s.econ, s.rng)

	s.perf.StartPhase(telemetry.PhasePopulation)
	s.population.Update(s.growth, dt, s.selected, s.rng)

	s.perf.StartPhase(telemetry.PhaseSteering)
	s.steering.Update(s.registry.Colonies(), s.time, dt, s.rng)

	s.perf.StartPhase(telemetry.PhaseBoss)
	s.boss.Update(dt, s.rng)

	s.perf.StartPhase(telemetry.PhaseChain)
	s.chain.Update()

	s.perf.StartPhase(telemetry.PhaseMutation)
	s.mutation.Update(s.growth, dt, s.rng)

	s.perf.StartPhase(telemetry.PhaseShockwave)
	s.shockwaves.Update(s.registry.Colonies(), dt)

	s.tick++
	s.time += dt

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()
	s.perf.EndTick()
}

// Close flushes pending output and closes output files.
func (s *Simulation) Close() error {
	if err := s.output.WriteEvents(s.pending); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	s.pending = nil
	return s.output.Close()
}

// OnStats registers a callback invoked with every closed stats window.
func (s *Simulation) OnStats(fn func(telemetry.WindowStats)) {
	s.onStats = fn
}

// Config returns the simulation configuration.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Seed returns the RNG seed.
func (s *Simulation) Seed() int64 { return s.seed }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int64 { return s.tick }

// Time returns the simulated seconds elapsed.
func (s *Simulation) Time() float64 { return s.time }

// Growth returns the growth score computed by the last step.
func (s *Simulation) Growth() float64 { return s.growth }

// Bus returns the event bus for subscribing to notifications.
func (s *Simulation) Bus() *telemetry.Bus { return s.bus }

// Events returns the event log.
func (s *Simulation) Events() *telemetry.EventLog { return s.events }

// Registry returns the colony registry.
func (s *Simulation) Registry() *systems.ColonyRegistry { return s.registry }

// BossSpawned reports whether the boss has emerged.
func (s *Simulation) BossSpawned() bool { return s.boss.Spawned() }

// TargetPopulation returns the worm count hatching grows toward at the
// current growth score.
func (s *Simulation) TargetPopulation() int { return s.population.TargetPopulation(s.growth) }

// NextSplitThreshold returns the market cap that triggers the next split.
func (s *Simulation) NextSplitThreshold() float64 { return s.population.NextSplitThreshold() }

// Perf returns the current step timing statistics.
func (s *Simulation) Perf() telemetry.PerfStats { return s.perf.Stats() }

// RecordFrame records viewer frame timing.
func (s *Simulation) RecordFrame() { s.perf.RecordFrame() }
