package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// MutationKind names the trait edit a mutation applied.
type MutationKind uint8

const (
	MutateColor MutationKind = iota
	MutateSpeed
	MutateWidth
	MutateLimb
	MutateRare
)

func (k MutationKind) String() string {
	return [...]string{"color", "speed", "width", "limb", "rare"}[k]
}

// MutationResult describes a mutation that fired.
type MutationResult struct {
	Kind      MutationKind
	Colony    int
	WormID    uint32
	Shockwave bool
}

// MutationSystem edits traits of random worms on a growth-driven timer.
type MutationSystem struct {
	cfg      config.MutationConfig
	mixTotal float64
	speedCap float64
	timer    float64

	registry   *ColonyRegistry
	shockwaves *ShockwaveSystem
	bus        *telemetry.Bus
}

// NewMutationSystem creates a mutation system.
func NewMutationSystem(cfg *config.Config, registry *ColonyRegistry, shockwaves *ShockwaveSystem, bus *telemetry.Bus) *MutationSystem {
	return &MutationSystem{
		cfg:        cfg.Mutation,
		mixTotal:   cfg.Derived.MixTotal,
		speedCap:   cfg.Worm.SpeedCap,
		registry:   registry,
		shockwaves: shockwaves,
		bus:        bus,
	}
}

// Interval returns the mutation timer period for a growth score.
func (s *MutationSystem) Interval(growth float64) float64 {
	return clampFloat(s.cfg.IntervalBase-growth*s.cfg.IntervalSlope, s.cfg.IntervalMin, s.cfg.IntervalMax)
}

// Update advances the timer; each time it elapses there is a fire_chance of
// mutating a random worm.
func (s *MutationSystem) Update(growth, dt float64, rng *rand.Rand) {
	s.timer += dt
	if s.timer < s.Interval(growth) {
		return
	}
	s.timer = 0
	if rng.Float64() < s.cfg.FireChance {
		s.MutateRandom(rng)
	}
}

// MutateRandom edits a uniformly random worm of a uniformly random colony.
// It is a no-op when there are no colonies or the chosen colony is empty.
func (s *MutationSystem) MutateRandom(rng *rand.Rand) (MutationResult, bool) {
	colonies := s.registry.Colonies()
	if len(colonies) == 0 {
		return MutationResult{}, false
	}
	c := colonies[rng.Intn(len(colonies))]
	if len(c.Worms) == 0 {
		return MutationResult{}, false
	}
	w := s.registry.Worm(c.Worms[rng.Intn(len(c.Worms))])

	res := MutationResult{Colony: c.ID, WormID: w.ID}
	var what string
	if rng.Float64() < s.cfg.RareChance {
		res.Kind = MutateRare
		what = s.rare(w, rng)
	} else {
		res.Kind, what = s.common(w, rng)
	}

	c.MutationCount++
	s.bus.Emit(telemetry.NewMutationEvent(c.ID, w.ID, what, res.Kind == MutateRare))

	if rng.Float64() < s.cfg.ShockwaveChance {
		strength := s.shockwaves.cfg.MutationStr
		if res.Kind == MutateRare {
			strength *= 2
		}
		s.shockwaves.Emit(c, strength)
		res.Shockwave = true
	}
	return res, true
}

// rare applies the large multi-trait edit.
func (s *MutationSystem) rare(w *components.Worm, rng *rand.Rand) string {
	w.Hue = wrapHue(w.Hue + randSign(rng)*randRange(rng, 60, 140))
	w.Width = clampFloat(w.Width*randRange(rng, 1.10, 1.35), s.cfg.MinWidth, s.cfg.RareMaxWidth)
	w.Speed = math.Min(w.Speed*randRange(rng, 1.05, 1.20), s.speedCap)
	s.registry.AddLimb(w, rng)
	return "transformed"
}

// common applies one weighted single-trait edit.
func (s *MutationSystem) common(w *components.Worm, rng *rand.Rand) (MutationKind, string) {
	roll := rng.Float64() * s.mixTotal
	switch {
	case roll < s.cfg.ColorWeight:
		w.Hue = wrapHue(w.Hue + randSign(rng)*randRange(rng, 10, 40))
		return MutateColor, "shifted color"
	case roll < s.cfg.ColorWeight+s.cfg.SpeedWeight:
		w.Speed = math.Min(w.Speed*randRange(rng, 1.05, 1.25), s.speedCap)
		return MutateSpeed, "sped up"
	case roll < s.cfg.ColorWeight+s.cfg.SpeedWeight+s.cfg.WidthWeight:
		// A rare edit may have left the worm wider than the common cap; keep it
		if w.Width < s.cfg.MaxWidth {
			w.Width = clampFloat(w.Width*randRange(rng, 1.05, 1.20), s.cfg.MinWidth, s.cfg.MaxWidth)
		}
		return MutateWidth, "thickened"
	default:
		if !s.registry.AddLimb(w, rng) {
			return MutateLimb, "strained for a limb"
		}
		return MutateLimb, "grew a limb"
	}
}
