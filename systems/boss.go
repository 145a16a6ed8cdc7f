package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// BossSystem spawns the single elite worm and drives its dash state machine.
type BossSystem struct {
	cfg config.BossConfig

	boss    ecs.Entity
	spawned bool

	registry   *ColonyRegistry
	steering   *SteeringSystem
	shockwaves *ShockwaveSystem
	bus        *telemetry.Bus
}

// NewBossSystem creates a boss system. The leash rules are shared with steering.
func NewBossSystem(cfg *config.Config, registry *ColonyRegistry, steering *SteeringSystem, shockwaves *ShockwaveSystem, bus *telemetry.Bus) *BossSystem {
	return &BossSystem{
		cfg:        cfg.Boss,
		registry:   registry,
		steering:   steering,
		shockwaves: shockwaves,
		bus:        bus,
	}
}

// Spawned reports whether the boss exists.
func (s *BossSystem) Spawned() bool {
	return s.spawned
}

// Entity returns the boss entity and whether it exists.
func (s *BossSystem) Entity() (ecs.Entity, bool) {
	return s.boss, s.spawned
}

// Dash returns the boss dash state, or nil before the boss emerges.
func (s *BossSystem) Dash() *components.BossDash {
	if !s.spawned {
		return nil
	}
	return s.registry.Dash(s.boss)
}

// EnsureBoss creates the boss in colony 0 the first time market cap reaches
// the threshold. Later calls never create another. Reports whether a boss was
// created by this call.
func (s *BossSystem) EnsureBoss(econ EconomyState, rng *rand.Rand) bool {
	if s.spawned || econ.MarketCap < s.cfg.CapThreshold {
		return false
	}
	dash := components.BossDash{
		Phase:     components.DashIdle,
		Countdown: s.rollCooldown(rng),
	}
	e, ok := s.registry.SpawnBoss(0, dash, rng)
	if !ok {
		return false
	}
	s.boss = e
	s.spawned = true

	s.shockwaves.EmitGiant(s.registry.Colony(0))
	s.bus.Emit(telemetry.NewBossEvent(0, s.registry.Worm(e).ID))
	return true
}

// Update advances the dash state machine. It runs after steering so the dash
// impulse layers on top of the normal steering output.
func (s *BossSystem) Update(dt float64, rng *rand.Rand) {
	if !s.spawned {
		return
	}
	dash := s.registry.Dash(s.boss)
	worm := s.registry.Worm(s.boss)
	c := s.registry.ColonyOf(s.boss)
	if dash == nil || worm == nil || c == nil {
		return
	}

	switch dash.Phase {
	case components.DashIdle:
		dash.Countdown -= dt
		if dash.Countdown <= 0 {
			s.startDash(worm, dash, c, rng)
		}
	case components.DashDashing:
		s.applyDash(worm, dash, c, dt)
		dash.TimeLeft -= dt
		if dash.TimeLeft <= 0 {
			s.endDash(dash, c, rng)
		}
	}
}

// startDash enters Dashing: picks a heading around the orbit tangent, an
// impulse and a duration, and may reverse the orbit.
func (s *BossSystem) startDash(w *components.Worm, dash *components.BossDash, c *components.Colony, rng *rand.Rand) {
	flipped := rng.Float64() < s.cfg.FlipChance
	if flipped {
		w.OrbitDir = -w.OrbitDir
	}

	toCenter := angleOf(r2.Sub(c.Pos, w.Head()))
	heading := normalizeAngle(toCenter + w.OrbitDir*math.Pi/2 + randRange(rng, -s.cfg.HeadingSpread, s.cfg.HeadingSpread))
	impulse := randRange(rng, s.cfg.MinImpulse, s.cfg.MaxImpulse)

	dash.Phase = components.DashDashing
	dash.Heading = heading
	dash.Velocity = r2.Scale(impulse, unit(heading))
	dash.TimeLeft = randRange(rng, s.cfg.MinDuration, s.cfg.MaxDuration)
	dash.Countdown = 0
	dash.Dashes++

	s.bus.Emit(telemetry.NewDashEvent(c.ID, w.ID, impulse, flipped))
	s.shockwaves.EmitGiant(c)
}

// applyDash adds the decaying impulse to the head and turns it toward the
// dash heading. Straying past the leash pulls it back and damps the impulse.
func (s *BossSystem) applyDash(w *components.Worm, dash *components.BossDash, c *components.Colony, dt float64) {
	head := &w.Segments[0]
	moved := r2.Scale(dt, dash.Velocity)
	head.Pos = r2.Add(head.Pos, moved)
	dash.Velocity = r2.Scale(math.Exp(-s.cfg.Decay*dt), dash.Velocity)
	head.Heading = lerpAngle(head.Heading, dash.Heading, 1-math.Exp(-s.cfg.DashTurn*dt))

	if s.steering.Leash(w, c, moved, dt) {
		dash.Velocity = r2.Scale(s.cfg.LeashDamp, dash.Velocity)
	}
}

// endDash returns to Idle with a fresh cooldown and a light closing ring.
func (s *BossSystem) endDash(dash *components.BossDash, c *components.Colony, rng *rand.Rand) {
	dash.Phase = components.DashIdle
	dash.TimeLeft = 0
	dash.Velocity = r2.Vec{}
	dash.Countdown = s.rollCooldown(rng)
	s.shockwaves.Emit(c, s.cfg.EndStrength)
}

func (s *BossSystem) rollCooldown(rng *rand.Rand) float64 {
	return randRange(rng, s.cfg.MinCooldown, s.cfg.MaxCooldown)
}
