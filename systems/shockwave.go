package systems

import (
	"math"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
)

// ShockwaveSystem emits and decays the ring effects of every colony, and
// resolves staggered bursts scheduled for later in the run.
type ShockwaveSystem struct {
	cfg     config.ShockwaveConfig
	fps     float64
	pending Schedule
}

// NewShockwaveSystem creates a shockwave system.
func NewShockwaveSystem(cfg *config.Config) *ShockwaveSystem {
	return &ShockwaveSystem{
		cfg: cfg.Shockwave,
		fps: cfg.Sim.ReferenceFPS,
	}
}

// Emit appends a fresh ring to the colony.
func (s *ShockwaveSystem) Emit(c *components.Colony, strength float64) {
	if c == nil {
		return
	}
	c.Shockwaves = append(c.Shockwaves, components.Shockwave{
		Radius: 0,
		Growth: s.cfg.BaseGrowth + strength*s.cfg.GrowthPerStr,
		Alpha:  s.cfg.StartAlpha,
		Width:  s.cfg.BaseWidth + strength,
	})
}

// EmitGiant fires a layered blast: the first layer now, the rest staggered.
func (s *ShockwaveSystem) EmitGiant(c *components.Colony) {
	if c == nil {
		return
	}
	for i, strength := range s.cfg.GiantStrengths {
		if i == 0 {
			s.Emit(c, strength)
			continue
		}
		s.pending.Add(float64(i)*s.cfg.GiantStagger, c, strength)
	}
}

// Pending returns the number of scheduled bursts not yet fired.
func (s *ShockwaveSystem) Pending() int {
	return s.pending.Len()
}

// Update fires due bursts, then grows and fades every ring, dropping those
// below the alpha floor.
func (s *ShockwaveSystem) Update(colonies []*components.Colony, dt float64) {
	s.pending.Advance(dt, s.Emit)

	f := frames(dt, s.fps)
	fade := math.Pow(s.cfg.Decay, f)
	for _, c := range colonies {
		alive := 0
		for i := range c.Shockwaves {
			w := &c.Shockwaves[i]
			w.Radius += w.Growth * f
			w.Alpha *= fade
			if w.Alpha < s.cfg.MinAlpha {
				continue
			}
			c.Shockwaves[alive] = *w
			alive++
		}
		c.Shockwaves = c.Shockwaves[:alive]
	}
}
