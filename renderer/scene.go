package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/camera"
	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// Spark burst sizes per event.
const (
	maxSparks   = 2048
	bossSparks  = 120
	dashSparks  = 40
	splitSparks = 60
	rareSparks  = 30
	sparkSpeed  = 160
	cullMargin  = 300
)

// Scene draws a complete world snapshot: background, colonies, worms and
// event sparks.
type Scene struct {
	Layers Layers

	background *BackgroundRenderer
	colonies   *ColonyRenderer
	worms      *WormRenderer
	sparks     *Sparks
	grid       *SegmentGrid

	last *telemetry.WorldSnapshot
}

// NewScene creates a scene for a screen size.
func NewScene(cfg *config.Config, screenW, screenH int32, seed int64) *Scene {
	return &Scene{
		Layers:     DefaultLayers(),
		background: NewBackgroundRenderer(screenW, screenH),
		colonies:   NewColonyRenderer(cfg),
		worms:      NewWormRenderer(),
		sparks:     NewSparks(maxSparks, seed),
		grid:       NewSegmentGrid(pickCellSize),
	}
}

// Resize updates screen-sized resources.
func (s *Scene) Resize(screenW, screenH int32) {
	s.background.Resize(screenW, screenH)
}

// SetSnapshot replaces the world being drawn and re-indexes it for picking.
func (s *Scene) SetSnapshot(snap *telemetry.WorldSnapshot) {
	s.last = snap
	if s.grid == nil {
		s.grid = NewSegmentGrid(pickCellSize)
	}
	s.grid.Build(snap)
}

// Snapshot returns the world being drawn.
func (s *Scene) Snapshot() *telemetry.WorldSnapshot {
	return s.last
}

// OnEvent throws sparks for notable events. Positions come from the last
// snapshot, so sparks may trail the live world by one observation.
func (s *Scene) OnEvent(e telemetry.Event) {
	if s.last == nil || !s.Layers.Sparks {
		return
	}
	if e.Kind == telemetry.KindEvent && e.Colony > 0 {
		// The new colony is not observed yet; it buds off colony 0
		if origin := s.colony(0); origin != nil {
			s.sparks.Burst(origin.X, origin.Y, origin.DNA.Hue, splitSparks, sparkSpeed)
		}
		return
	}
	c := s.colony(e.Colony)
	if c == nil {
		return
	}
	switch e.Kind {
	case telemetry.KindBoss:
		s.sparks.Burst(c.X, c.Y, 8, bossSparks, sparkSpeed*1.5)
	case telemetry.KindDash:
		if w := findWorm(c, e.WormID); w != nil && len(w.Segments) > 0 {
			s.sparks.Burst(w.Segments[0].X, w.Segments[0].Y, w.Hue, dashSparks, sparkSpeed)
		}
	case telemetry.KindMutation:
		if !e.Rare {
			return
		}
		if w := findWorm(c, e.WormID); w != nil && len(w.Segments) > 0 {
			s.sparks.Burst(w.Segments[0].X, w.Segments[0].Y, w.Hue, rareSparks, sparkSpeed*0.6)
		}
	}
}

// Update advances viewer-only animation.
func (s *Scene) Update(dt float32) {
	s.sparks.Update(dt)
}

// Draw renders the last snapshot through the camera. t is the viewer clock.
func (s *Scene) Draw(cam *camera.Camera, t float64) {
	snap := s.last
	if snap == nil {
		return
	}

	if c := s.colony(snap.Selected); c != nil {
		s.background.SetBaseColor(BiomeColor(c.DNA.Biome))
	}
	s.background.Draw(float32(t), cam.X, cam.Y, cam.Zoom)

	rl.BeginMode2D(Camera2D(cam))

	visible := make([]bool, len(snap.Colonies))
	for i := range snap.Colonies {
		c := &snap.Colonies[i]
		visible[i] = cam.IsVisible(float32(c.X), float32(c.Y), float32(s.colonies.LeashRadius(c))+cullMargin)
		if visible[i] {
			s.colonies.DrawBase(c, t, c.ID == snap.Selected, s.Layers)
		}
	}
	for i := range snap.Colonies {
		if !visible[i] {
			continue
		}
		c := &snap.Colonies[i]
		for j := range c.Worms {
			s.worms.Draw(&c.Worms[j], c.DNA.Style, t, s.Layers)
		}
	}
	for i := range snap.Colonies {
		if visible[i] {
			s.colonies.DrawEffects(&snap.Colonies[i], t, s.Layers)
		}
	}
	if s.Layers.Sparks {
		s.sparks.Draw()
	}

	rl.EndMode2D()
}

// WormAt returns the worm whose body passes closest to a world point, within
// radius. Returns nil when none is close enough.
func (s *Scene) WormAt(x, y, radius float64) *telemetry.WormState {
	if s.last == nil || s.grid == nil {
		return nil
	}
	return s.grid.Nearest(x, y, radius)
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	s.background.Unload()
}

func (s *Scene) colony(id int) *telemetry.ColonyState {
	if s.last == nil || id < 0 || id >= len(s.last.Colonies) {
		return nil
	}
	return &s.last.Colonies[id]
}

func findWorm(c *telemetry.ColonyState, id uint32) *telemetry.WormState {
	for i := range c.Worms {
		if c.Worms[i].ID == id {
			return &c.Worms[i]
		}
	}
	return nil
}
