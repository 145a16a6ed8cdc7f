package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// PopulationSystem hatches worms on a growth-driven timer and splits off new
// colonies as market cap crosses successive thresholds.
type PopulationSystem struct {
	pop    config.PopulationConfig
	colony config.ColonyConfig

	spawnTimer         float64
	nextSplitThreshold float64

	registry   *ColonyRegistry
	shockwaves *ShockwaveSystem
	bus        *telemetry.Bus
}

// NewPopulationSystem creates a population system.
func NewPopulationSystem(cfg *config.Config, registry *ColonyRegistry, shockwaves *ShockwaveSystem, bus *telemetry.Bus) *PopulationSystem {
	return &PopulationSystem{
		pop:                cfg.Population,
		colony:             cfg.Colony,
		nextSplitThreshold: cfg.Colony.SplitThreshold,
		registry:           registry,
		shockwaves:         shockwaves,
		bus:                bus,
	}
}

// NextSplitThreshold returns the market cap that triggers the next split.
func (s *PopulationSystem) NextSplitThreshold() float64 {
	return s.nextSplitThreshold
}

// TargetPopulation returns the worm count the scheduler grows toward.
func (s *PopulationSystem) TargetPopulation(growth float64) int {
	target := int(math.Floor(s.pop.TargetBase + growth*s.pop.TargetPerScore))
	return clampInt(target, s.pop.TargetMin, s.pop.TargetMax)
}

// SpawnInterval returns the seconds between hatches for a growth score.
func (s *PopulationSystem) SpawnInterval(growth float64) float64 {
	return clampFloat(s.pop.IntervalBase-growth*s.pop.IntervalSlope, s.pop.IntervalMin, s.pop.IntervalMax)
}

// StarterCount returns how many worms a freshly split colony starts with.
func (s *PopulationSystem) StarterCount(growth float64) int {
	n := int(math.Floor(s.colony.StarterBase + growth*s.colony.StarterPerScore))
	return clampInt(n, s.colony.StarterMin, s.colony.StarterMax)
}

// Update hatches one worm into the selected colony (colony 0 when the
// selection is out of range) whenever the population is below target and the
// spawn interval has elapsed. Reports whether a worm hatched.
func (s *PopulationSystem) Update(growth, dt float64, selected int, rng *rand.Rand) bool {
	if s.registry.TotalWorms() >= s.TargetPopulation(growth) {
		return false
	}
	s.spawnTimer += dt
	if s.spawnTimer <= s.SpawnInterval(growth) {
		return false
	}
	s.spawnTimer = 0

	ci := selected
	if s.registry.Colony(ci) == nil {
		ci = 0
	}
	e, ok := s.registry.SpawnWorm(ci, false, rng)
	if !ok {
		return false
	}
	s.bus.Emit(telemetry.NewHatchEvent(ci, s.registry.Worm(e).ID))
	return true
}

// TrySplit creates one colony per crossed threshold, in ascending threshold
// order, until the market cap is below the next threshold or the colony cap
// is reached. Returns the number of colonies created.
func (s *PopulationSystem) TrySplit(econ EconomyState, growth float64, rng *rand.Rand) int {
	origin := s.registry.Colony(0)
	if origin == nil {
		return 0
	}

	created := 0
	for econ.MarketCap >= s.nextSplitThreshold && !s.registry.Full() {
		angle := rng.Float64() * 2 * math.Pi
		dist := randRange(rng, s.colony.SplitMinDist, s.colony.SplitMaxDist)
		pos := r2.Add(origin.Pos, r2.Scale(dist, unit(angle)))
		hue := origin.DNA.Hue + randRange(rng, -s.colony.HueSpread, s.colony.HueSpread)

		c := s.registry.AddColony(pos, hue, rng)
		starters := s.StarterCount(growth)
		for i := 0; i < starters; i++ {
			s.registry.SpawnWorm(c.ID, rng.Float64() < s.colony.LargeChance, rng)
		}

		s.nextSplitThreshold += s.colony.SplitStep
		created++

		s.shockwaves.Emit(c, s.shockwaves.cfg.SplitStr)
		s.bus.Emit(telemetry.NewSplitEvent(c.ID, starters))
	}
	return created
}
