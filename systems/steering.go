package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
)

// SteeringSystem turns and advances every worm's head around its colony.
type SteeringSystem struct {
	filter *ecs.Filter2[components.Worm, components.Membership]
	cfg    config.SteeringConfig
	fps    float64
}

// NewSteeringSystem creates a steering system.
func NewSteeringSystem(w *ecs.World, cfg *config.Config) *SteeringSystem {
	return &SteeringSystem{
		filter: ecs.NewFilter2[components.Worm, components.Membership](w),
		cfg:    cfg.Steering,
		fps:    cfg.Sim.ReferenceFPS,
	}
}

// Update steers every worm for one tick. t is the simulation time in seconds.
func (s *SteeringSystem) Update(colonies []*components.Colony, t, dt float64, rng *rand.Rand) {
	query := s.filter.Query()
	for query.Next() {
		worm, member := query.Get()
		if member.Colony < 0 || member.Colony >= len(colonies) {
			continue
		}
		s.Steer(worm, colonies[member.Colony], t, dt, rng)
	}
}

// Mix returns the base blend for a worm type.
func (s *SteeringSystem) Mix(t components.WormType) config.TypeMix {
	switch t {
	case components.Orbiter:
		return s.cfg.Orbiter
	case components.Hunter:
		return s.cfg.Hunter
	}
	return s.cfg.Drifter
}

// PreferredRadius is the orbit radius a worm is pulled toward.
func (s *SteeringSystem) PreferredRadius(w *components.Worm, c *components.Colony) float64 {
	return s.cfg.RingBase*w.OrbitTight + s.cfg.RingAura*c.DNA.Aura
}

// LeashRadius is the distance beyond which a worm is pulled back.
func (s *SteeringSystem) LeashRadius(c *components.Colony) float64 {
	return s.cfg.LeashBase + s.cfg.LeashAura*c.DNA.Aura
}

// Steer blends wander, approach and tangent headings, turns the head toward
// the blend along the shortest arc, advances it and applies the leash.
func (s *SteeringSystem) Steer(w *components.Worm, c *components.Colony, t, dt float64, rng *rand.Rand) {
	if len(w.Segments) == 0 {
		return
	}
	head := &w.Segments[0]
	f := frames(dt, s.fps)

	toCenter := r2.Sub(c.Pos, head.Pos)
	dist := r2.Norm(toCenter)
	approach := angleOf(toCenter)
	tangent := approach + w.OrbitDir*(math.Pi/2+w.OrbitBias)

	jitter := (rng.Float64()*2 - 1) * s.cfg.Jitter * c.DNA.Chaos
	freq := s.cfg.WobbleFreq * (0.6 + 0.4*math.Abs(math.Sin(w.Phase)))
	wobble := math.Sin(t*freq+w.Phase) * s.cfg.Wobble
	wander := head.Heading + jitter + wobble

	mix := s.Mix(w.Type)
	wWander, wCenter, wTangent := mix.Wander, mix.Center, mix.Tangent

	// Ring pull: outside the preferred orbit favor approach, inside favor tangent
	pref := s.PreferredRadius(w, c)
	ringErr := clampFloat((dist-pref)/pref, -1, 1)
	if ringErr > 0 {
		wCenter += ringErr * s.cfg.RingPull
		wTangent = math.Max(0, wTangent-ringErr*s.cfg.RingPull*0.5)
	} else {
		wTangent += -ringErr * s.cfg.RingPush
		wCenter = math.Max(0, wCenter+ringErr*s.cfg.RingPush)
	}

	blend := r2.Add(r2.Scale(wWander, unit(wander)), r2.Add(
		r2.Scale(wCenter, unit(approach)),
		r2.Scale(wTangent, unit(tangent)),
	))
	desired := head.Heading
	if r2.Norm(blend) > 1e-9 {
		desired = angleOf(blend)
	}

	rate := clampFloat(w.TurnRate*mix.Turn, 0, s.cfg.MaxTurnPerFrame)
	head.Heading = lerpAngle(head.Heading, desired, 1-math.Pow(1-rate, f))

	step := w.Speed * s.cfg.SpeedFactor * dt
	if w.IsBoss {
		step *= s.cfg.BossSpeedMul
	}
	moved := r2.Scale(step, unit(head.Heading))
	head.Pos = r2.Add(head.Pos, moved)

	s.Leash(w, c, moved, dt)
}

// Leash pulls a head beyond the leash radius back toward the colony in
// proportion to the overage and nudges its heading to return and orbit.
// moved is the head's displacement this tick; its outward part is always
// undone so a leashed head never ends a tick farther out than it started.
// Reports whether the worm was leashed.
func (s *SteeringSystem) Leash(w *components.Worm, c *components.Colony, moved r2.Vec, dt float64) bool {
	head := &w.Segments[0]
	offset := r2.Sub(head.Pos, c.Pos)
	dist := r2.Norm(offset)
	leash := s.LeashRadius(c)
	if dist <= leash || dist < 1e-9 {
		return false
	}

	over := dist - leash
	pull := over * (1 - math.Exp(-s.cfg.LeashStiffness*dt))
	if outward := r2.Dot(moved, offset) / dist; outward > 0 {
		pull += outward
	}
	pull = math.Min(pull, over)
	head.Pos = r2.Add(c.Pos, r2.Scale((dist-pull)/dist, offset))

	inward := angleOf(r2.Scale(-1, offset))
	back := inward + w.OrbitDir*math.Pi/4
	head.Heading = lerpAngle(head.Heading, back, s.cfg.LeashNudge)
	return true
}
