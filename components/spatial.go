package components

import "gonum.org/v1/gonum/spatial/r2"

// Segment is one link of a worm's body chain.
// Heading points from this segment toward the one ahead of it (the head's
// heading is the direction of travel).
type Segment struct {
	Pos     r2.Vec  `inspect:"skip"`
	Heading float64 `inspect:"label,fmt:%.2f"` // radians
	Length  float64 `inspect:"label,fmt:%.1f"` // rest distance to the previous segment
}

// Limb is a decorative appendage hanging off a body segment.
type Limb struct {
	Attach     int     // index into Segments, never 0
	Length     float64 // world units
	Angle      float64 // offset from the segment heading (radians)
	WobbleRate float64 // oscillation frequency (rad/s)
}
