package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/game"
	"github.com/pthm-cable/wormsoup/systems"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// Quality component weights.
const (
	qualityWeightOrbit  = 0.45
	qualityWeightLeash  = 0.30
	qualityWeightMotion = 0.25

	warmupSec      = 5.0  // skipped before sampling
	sampleInterval = 0.25 // seconds between samples
	orbitTolerance = 0.35 // relative orbit error scored at 1/e
)

// tuningEconomy populates three colonies, the boss and a few dozen worms.
var tuningEconomy = systems.EconomyState{Buyers: 100, Volume: 30000, MarketCap: 60000}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	seconds    float64
	seeds      []int64
	baseConfig *config.Config

	mu           sync.Mutex
	bestFitness  float64
	bestSnapshot *telemetry.WorldSnapshot
	lastQuality  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seconds float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seconds:     seconds,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestSnapshot returns the final world of the best evaluation.
func (fe *FitnessEvaluator) BestSnapshot() *telemetry.WorldSnapshot {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSnapshot
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the per-sample scores of one run.
type runResult struct {
	orbit    []float64
	leash    []float64
	motion   []float64
	snapshot *telemetry.WorldSnapshot
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean quality across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	bestSeed := -1.0
	var bestSnap *telemetry.WorldSnapshot
	for _, r := range results {
		q := computeQuality(r)
		total += q
		if q > bestSeed {
			bestSeed = q
			bestSnap = r.snapshot
		}
	}
	quality := total / float64(len(fe.seeds))
	fitness := -quality

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestSnapshot = bestSnap
	}
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run under the tuning economy.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	sim, err := game.NewSimulation(cfg, game.Options{Seed: seed})
	if err != nil {
		return result
	}
	defer sim.Close()
	sim.SetEconomy(tuningEconomy)

	dt := cfg.Sim.DefaultDT
	sampleTicks := max(1, int64(sampleInterval/dt))
	warmupTicks := int64(warmupSec / dt)
	totalTicks := int64(fe.seconds / dt)

	prev := make(map[uint32]r2.Vec)
	for sim.Tick() < totalTicks {
		sim.Step(dt)
		if sim.Tick() < warmupTicks || sim.Tick()%sampleTicks != 0 {
			continue
		}
		orbit, leash, motion := sampleScores(sim, cfg, prev, float64(sampleTicks)*dt)
		result.orbit = append(result.orbit, orbit)
		result.leash = append(result.leash, leash)
		if motion >= 0 {
			result.motion = append(result.motion, motion)
		}
	}
	result.snapshot = sim.Snapshot()
	return result
}

// sampleScores scores the current world in [0, 1] per component. Orbit peaks
// when heads sit on their preferred radius; motion compares distance covered
// since the last sample with the nominal speed. motion is -1 when no worm has
// a previous position.
func sampleScores(sim *game.Simulation, cfg *config.Config, prev map[uint32]r2.Vec, elapsed float64) (orbit, leash, motion float64) {
	reg := sim.Registry()
	var n, inside int
	var moved []float64

	for _, c := range reg.Colonies() {
		leashR := cfg.Steering.LeashBase + cfg.Steering.LeashAura*c.DNA.Aura
		for _, e := range c.Worms {
			w := reg.Worm(e)
			head := w.Head()
			dist := r2.Norm(r2.Sub(head, c.Pos))

			pref := cfg.Steering.RingBase*w.OrbitTight + cfg.Steering.RingAura*c.DNA.Aura
			relErr := (dist - pref) / pref / orbitTolerance
			orbit += math.Exp(-relErr * relErr)
			if dist <= leashR {
				inside++
			}
			n++

			if p, ok := prev[w.ID]; ok && !w.IsBoss {
				nominal := w.Speed * cfg.Steering.SpeedFactor * elapsed
				moved = append(moved, clamp01(r2.Norm(r2.Sub(head, p))/nominal))
			}
			prev[w.ID] = head
		}
	}
	if n == 0 {
		return 0, 0, -1
	}
	motion = -1
	if len(moved) > 0 {
		motion = stat.Mean(moved, nil)
	}
	return orbit / float64(n), float64(inside) / float64(n), motion
}

// copyConfig creates a copy of the base config. Slices are shared and never
// written by the tuner.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeQuality combines the sample series into a quality score in [0, 1].
func computeQuality(r *runResult) float64 {
	if len(r.orbit) == 0 {
		return 0
	}
	quality := qualityWeightOrbit*stat.Mean(r.orbit, nil) +
		qualityWeightLeash*stat.Mean(r.leash, nil)
	if len(r.motion) > 0 {
		quality += qualityWeightMotion * stat.Mean(r.motion, nil)
	}
	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
