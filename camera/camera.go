// Package camera provides a 2D follow camera over the unbounded colony plane.
package camera

import "math"

// Camera controls the viewport into the simulation world.
// Supports pan, zoom and smooth follow of a target point.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	MinZoom, MaxZoom float32

	// FollowRate is the exponential approach rate toward the follow target (1/s)
	FollowRate float32
}

// New creates a camera centered on the world origin with 1:1 zoom.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:       1.0,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		MinZoom:    0.25,
		MaxZoom:    4.0,
		FollowRate: 3.0,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Follow eases the camera center toward (tx, ty). The approach is
// frame-rate independent: the remaining offset shrinks by exp(-rate*dt).
func (c *Camera) Follow(tx, ty, dt float32) {
	if dt <= 0 {
		return
	}
	k := 1 - float32(math.Exp(float64(-c.FollowRate*dt)))
	c.X += (tx - c.X) * k
	c.Y += (ty - c.Y) * k
}

// Frame sets the zoom so a circle of the given world radius fits the
// shorter viewport side with a margin.
func (c *Camera) Frame(radius float32) {
	if radius <= 0 {
		return
	}
	side := c.ViewportW
	if c.ViewportH < side {
		side = c.ViewportH
	}
	c.SetZoom(side / (2.2 * radius))
}

// Reset returns the camera to the origin and default zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
