package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// Body taper and limb sway.
const (
	tailTaper  = 0.55 // fraction of width lost toward the tail
	limbSway   = 0.35 // radians of limb oscillation
	limbWidth  = 1.6
	spineEvery = 2
)

// WormRenderer draws worm bodies in their colony style.
type WormRenderer struct{}

// NewWormRenderer creates a new worm renderer.
func NewWormRenderer() *WormRenderer {
	return &WormRenderer{}
}

// Draw renders one worm. t is the viewer clock in seconds.
func (r *WormRenderer) Draw(w *telemetry.WormState, style components.Style, t float64, layers Layers) {
	n := len(w.Segments)
	if n == 0 {
		return
	}

	if layers.Limbs {
		r.drawLimbs(w, t)
	}

	switch style {
	case components.Beaded:
		r.drawBeaded(w)
	case components.Spined:
		r.drawRibbon(w, 1)
		r.drawSpines(w)
	case components.Glass:
		r.drawGlass(w)
	case components.Ember:
		r.drawEmber(w, t)
	default:
		r.drawRibbon(w, 1)
	}

	head := w.Segments[0]
	rl.DrawCircleV(vec(head.X, head.Y), float32(w.Width*0.6), WormColor(w.Hue+20, 1))

	if w.IsBoss {
		pulse := float32(2 * math.Sin(t*4))
		rl.DrawCircleLinesV(vec(head.X, head.Y), float32(w.Width*1.8)+pulse, rl.Fade(rl.Red, 0.7))
		rl.DrawCircleLinesV(vec(head.X, head.Y), float32(w.Width*2.4)+pulse, rl.Fade(rl.Orange, 0.35))
	}

	if layers.Headings {
		tipX := head.X + 3*w.Width*math.Cos(head.Heading)
		tipY := head.Y + 3*w.Width*math.Sin(head.Heading)
		rl.DrawLineEx(vec(head.X, head.Y), vec(tipX, tipY), 1, rl.Yellow)
	}
}

func (r *WormRenderer) drawRibbon(w *telemetry.WormState, alpha float32) {
	n := len(w.Segments)
	color := WormColor(w.Hue, alpha)
	for i := 1; i < n; i++ {
		a, b := w.Segments[i-1], w.Segments[i]
		thick := bodyWidth(w.Width, i, n)
		rl.DrawLineEx(vec(a.X, a.Y), vec(b.X, b.Y), thick, color)
		rl.DrawCircleV(vec(b.X, b.Y), thick/2, color)
	}
}

func (r *WormRenderer) drawBeaded(w *telemetry.WormState) {
	n := len(w.Segments)
	for i := n - 1; i >= 0; i-- {
		s := w.Segments[i]
		shade := 1 - 0.3*float32(i%2)
		rl.DrawCircleV(vec(s.X, s.Y), bodyWidth(w.Width, i, n)*0.55, WormColor(w.Hue, shade))
	}
}

func (r *WormRenderer) drawSpines(w *telemetry.WormState) {
	n := len(w.Segments)
	color := WormColor(w.Hue+180, 0.8)
	for i := 1; i < n; i += spineEvery {
		s := w.Segments[i]
		half := float64(bodyWidth(w.Width, i, n))
		for _, side := range [2]float64{-1, 1} {
			a := s.Heading + side*math.Pi/2
			tipX := s.X + 1.4*half*math.Cos(a)
			tipY := s.Y + 1.4*half*math.Sin(a)
			rl.DrawLineEx(vec(s.X, s.Y), vec(tipX, tipY), 1.2, color)
		}
	}
}

func (r *WormRenderer) drawGlass(w *telemetry.WormState) {
	n := len(w.Segments)
	fill := WormColor(w.Hue, 0.25)
	edge := WormColor(w.Hue, 0.8)
	for i, s := range w.Segments {
		radius := bodyWidth(w.Width, i, n) * 0.6
		rl.DrawCircleV(vec(s.X, s.Y), radius, fill)
		rl.DrawCircleLinesV(vec(s.X, s.Y), radius, edge)
	}
}

func (r *WormRenderer) drawEmber(w *telemetry.WormState, t float64) {
	n := len(w.Segments)
	flicker := float32(0.2 + 0.1*math.Sin(t*9+float64(w.ID)))
	for i := 1; i < n; i++ {
		a, b := w.Segments[i-1], w.Segments[i]
		thick := bodyWidth(w.Width, i, n)
		rl.DrawLineEx(vec(a.X, a.Y), vec(b.X, b.Y), thick*2, WormColor(w.Hue-20, flicker))
	}
	r.drawRibbon(w, 1)
}

func (r *WormRenderer) drawLimbs(w *telemetry.WormState, t float64) {
	color := WormColor(w.Hue+40, 0.85)
	for _, l := range w.Limbs {
		if l.Attach <= 0 || l.Attach >= len(w.Segments) {
			continue
		}
		s := w.Segments[l.Attach]
		x, y := limbTip(s, l, t)
		rl.DrawLineEx(vec(s.X, s.Y), vec(x, y), limbWidth, color)
	}
}

// bodyWidth tapers a worm's width from head (i = 0) to tail (i = n-1).
func bodyWidth(width float64, i, n int) float32 {
	if n <= 1 {
		return float32(width)
	}
	f := float64(i) / float64(n-1)
	return float32(width * (1 - tailTaper*f))
}

// limbTip returns the far end of a limb at viewer time t.
func limbTip(s telemetry.SegmentState, l components.Limb, t float64) (x, y float64) {
	a := s.Heading + l.Angle + limbSway*math.Sin(t*l.WobbleRate)
	return s.X + l.Length*math.Cos(a), s.Y + l.Length*math.Sin(a)
}
