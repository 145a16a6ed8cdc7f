package game

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/systems"
	"github.com/pthm-cable/wormsoup/telemetry"
)

const frame = 1.0 / 60

func newTestSim(t *testing.T, seed int64) *Simulation {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	s, err := NewSimulation(cfg, Options{Seed: seed})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func run(s *Simulation, seconds float64) {
	for n := int(seconds / frame); n > 0; n-- {
		s.Step(frame)
	}
}

func bossCount(s *Simulation) int {
	n := 0
	for _, c := range s.Snapshot().Colonies {
		for _, w := range c.Worms {
			if w.IsBoss {
				n++
			}
		}
	}
	return n
}

func TestNewSimulation(t *testing.T) {
	s := newTestSim(t, 1)
	if got := s.Registry().Len(); got != 1 {
		t.Errorf("%d colonies at start, want 1", got)
	}
	if got := s.Registry().TotalWorms(); got != s.Config().Colony.InitialWorms {
		t.Errorf("%d worms at start, want %d", got, s.Config().Colony.InitialWorms)
	}
	if got := s.Events().Total(telemetry.KindEvent); got != 1 {
		t.Errorf("%d startup events, want 1", got)
	}
}

func TestStepNonPositiveDT(t *testing.T) {
	s := newTestSim(t, 2)
	before := s.Snapshot()

	s.Step(0)
	s.Step(-0.5)

	if s.Tick() != 0 || s.Time() != 0 {
		t.Errorf("tick %d time %v after no-op steps", s.Tick(), s.Time())
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("world changed on a non-positive dt")
	}
}

func TestStepCapsDT(t *testing.T) {
	s := newTestSim(t, 3)
	s.Step(5)
	if got := s.Time(); got != s.Config().Sim.MaxDT {
		t.Errorf("time after a 5s step = %v, want %v", got, s.Config().Sim.MaxDT)
	}
}

func TestDeterministicSeed(t *testing.T) {
	a := newTestSim(t, 99)
	b := newTestSim(t, 99)
	for _, s := range []*Simulation{a, b} {
		s.AddMarketCap(60000)
		s.Buy(30)
		run(s, 20)
		s.TriggerMutation()
		run(s, 5)
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("same seed and inputs produced different worlds")
	}
}

func TestSplitScenario(t *testing.T) {
	s := newTestSim(t, 4)
	s.AddMarketCap(25000)
	s.Step(frame)

	if got := s.Registry().Len(); got != 2 {
		t.Fatalf("%d colonies, want 2", got)
	}
	if n := len(s.Registry().Colony(1).Worms); n < 2 || n > 7 {
		t.Errorf("split colony has %d worms, want 2..7", n)
	}
	if got := s.NextSplitThreshold(); got != 50000 {
		t.Errorf("next threshold %v, want 50000", got)
	}
}

func TestBossScenario(t *testing.T) {
	s := newTestSim(t, 5)
	s.SetEconomy(systems.EconomyState{MarketCap: 50000})
	s.Step(frame)

	if !s.BossSpawned() {
		t.Fatal("no boss at market cap 50000")
	}
	s.SetEconomy(systems.EconomyState{MarketCap: 90000})
	run(s, 30)

	if got := bossCount(s); got != 1 {
		t.Errorf("%d bosses, want 1", got)
	}
	if got := s.Events().Total(telemetry.KindBoss); got != 1 {
		t.Errorf("%d boss events, want 1", got)
	}
	if s.Events().Total(telemetry.KindDash) == 0 {
		t.Error("boss never dashed in 30s")
	}
	if snap := s.Snapshot(); snap.Boss == nil || snap.Boss.Colony != 0 {
		t.Errorf("boss snapshot = %+v", snap.Boss)
	}
}

func TestColonyCap(t *testing.T) {
	s := newTestSim(t, 6)
	s.AddMarketCap(1e9)
	s.Step(frame)
	run(s, 2)

	if got := s.Registry().Len(); got != s.Config().Colony.Max {
		t.Errorf("%d colonies, want cap %d", got, s.Config().Colony.Max)
	}
}

func TestPopulationSettlesAtTarget(t *testing.T) {
	s := newTestSim(t, 7)
	s.Buy(50) // growth 5, target 13, no splits
	run(s, 60)

	if got := s.TargetPopulation(); got != 13 {
		t.Errorf("target population %d, want 13", got)
	}
	if got := s.Registry().TotalWorms(); got != 13 {
		t.Errorf("%d worms after 60s, want 13", got)
	}
	if got := s.Events().Total(telemetry.KindHatch); got != 10 {
		t.Errorf("%d hatches, want 10", got)
	}
}

func TestLongRunStaysBounded(t *testing.T) {
	s := newTestSim(t, 8)
	s.SetEconomy(systems.EconomyState{Buyers: 200, Volume: 90000, MarketCap: 120000})
	run(s, 120)

	cfg := s.Config()
	snap := s.Snapshot()
	if len(snap.Colonies) > cfg.Colony.Max {
		t.Fatalf("%d colonies above cap", len(snap.Colonies))
	}
	for _, c := range snap.Colonies {
		center := r2.Vec{X: c.X, Y: c.Y}
		leash := cfg.Steering.LeashBase + cfg.Steering.LeashAura*c.DNA.Aura
		for _, w := range c.Worms {
			for i, seg := range w.Segments {
				if math.IsNaN(seg.X) || math.IsNaN(seg.Y) || math.IsInf(seg.X, 0) || math.IsInf(seg.Y, 0) {
					t.Fatalf("worm %d segment %d not finite", w.ID, i)
				}
			}
			head := r2.Vec{X: w.Segments[0].X, Y: w.Segments[0].Y}
			if d := r2.Norm(r2.Sub(head, center)); d > leash+200 {
				t.Errorf("worm %d is %v from colony %d (leash %v)", w.ID, d, c.ID, leash)
			}
			if w.Width > cfg.Mutation.RareMaxWidth || w.Width < cfg.Mutation.MinWidth {
				t.Errorf("worm %d width %v out of range", w.ID, w.Width)
			}
			if w.Hue < 0 || w.Hue >= 360 {
				t.Errorf("worm %d hue %v out of range", w.ID, w.Hue)
			}
		}
	}
}

func TestOutputFiles(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	dir := t.TempDir()
	s, err := NewSimulation(cfg, Options{Seed: 9, OutputDir: dir, StatsWindowSec: 5})

	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	var windows []telemetry.WindowStats
	s.OnStats(func(ws telemetry.WindowStats) { windows = append(windows, ws) })

	s.Buy(40)
	run(s, 11)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(windows) != 2 {
		t.Errorf("%d stats windows in 11s, want 2", len(windows))
	}
	for _, name := range []string{"config.yaml", "telemetry.csv", "events.csv", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatalf("reading events.csv: %v", err)
	}
	if !strings.Contains(string(data), "HATCH") || !strings.Contains(string(data), "founded") {
		t.Error("events.csv is missing hatch or startup events")
	}
}
