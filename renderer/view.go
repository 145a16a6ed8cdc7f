// Package renderer draws world snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/camera"
)

// Camera2D converts the follow camera into a raylib camera. Drawing between
// BeginMode2D and EndMode2D then uses world coordinates.
func Camera2D(c *camera.Camera) rl.Camera2D {
	return rl.Camera2D{
		Offset:   rl.NewVector2(c.ViewportW/2, c.ViewportH/2),
		Target:   rl.NewVector2(c.X, c.Y),
		Rotation: 0,
		Zoom:     c.Zoom,
	}
}

// Layers selects the optional world layers a Scene draws.
type Layers struct {
	Shockwaves bool
	Nodes      bool
	Limbs      bool
	Rings      bool // preferred orbit and leash radii
	Headings   bool
	Sparks     bool
}

// DefaultLayers returns the layers shown at startup.
func DefaultLayers() Layers {
	return Layers{Shockwaves: true, Nodes: true, Limbs: true, Sparks: true}
}

func vec(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x), float32(y))
}
