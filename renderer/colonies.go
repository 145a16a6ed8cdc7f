package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// Colony drawing constants.
const (
	coreRadius   = 14
	auraRadius   = 90
	nodeSpin     = 0.25 // rad/s
	ringSegments = 48
)

// ColonyRenderer draws colony cores, nodes, shockwaves and radius guides.
type ColonyRenderer struct {
	steering config.SteeringConfig
}

// NewColonyRenderer creates a colony renderer. Radius guides follow the
// steering config.
func NewColonyRenderer(cfg *config.Config) *ColonyRenderer {
	return &ColonyRenderer{steering: cfg.Steering}
}

// LeashRadius returns the leash radius of a colony.
func (r *ColonyRenderer) LeashRadius(c *telemetry.ColonyState) float64 {
	return r.steering.LeashBase + r.steering.LeashAura*c.DNA.Aura
}

// DrawBase renders what sits under the worms: aura, core and guides.
func (r *ColonyRenderer) DrawBase(c *telemetry.ColonyState, t float64, selected bool, layers Layers) {
	center := vec(c.X, c.Y)

	aura := float32(auraRadius * c.DNA.Aura)
	rl.DrawCircleGradient(int32(c.X), int32(c.Y), aura, ColonyColor(c.DNA, 0.25), ColonyColor(c.DNA, 0))

	if layers.Rings {
		pref := r.steering.RingBase + r.steering.RingAura*c.DNA.Aura
		rl.DrawCircleLinesV(center, float32(pref), rl.Fade(rl.SkyBlue, 0.3))
		rl.DrawCircleLinesV(center, float32(r.LeashRadius(c)), rl.Fade(rl.Red, 0.3))
	}

	pulse := float32(1 + 0.15*math.Sin(t*2*c.DNA.Drift))
	rl.DrawCircleV(center, coreRadius*pulse, ColonyColor(c.DNA, 0.9))

	if selected {
		rl.DrawCircleLinesV(center, coreRadius*2.2+3*float32(math.Sin(t*3)), rl.RayWhite)
	}
}

// DrawEffects renders what sits over the worms: nodes and shockwaves.
func (r *ColonyRenderer) DrawEffects(c *telemetry.ColonyState, t float64, layers Layers) {
	if layers.Nodes {
		for _, n := range c.Nodes {
			a := n.Angle + t*nodeSpin*c.DNA.Chaos
			x := c.X + n.Radius*math.Cos(a)
			y := c.Y + n.Radius*math.Sin(a)
			size := float32(n.Size * (1 + 0.25*math.Sin(t*2+n.Phase)))
			rl.DrawCircleV(vec(x, y), size, ColonyColor(c.DNA, 0.7))
		}
	}

	if layers.Shockwaves {
		center := vec(c.X, c.Y)
		for _, s := range c.Shockwaves {
			inner := float32(math.Max(0, s.Radius-s.Width/2))
			outer := float32(s.Radius + s.Width/2)
			rl.DrawRing(center, inner, outer, 0, 360, ringSegments, ColonyColor(c.DNA, float32(s.Alpha)))
		}
	}
}
