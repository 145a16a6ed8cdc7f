package components

import "gonum.org/v1/gonum/spatial/r2"

// WormType selects a worm's base steering mix.
type WormType uint8

const (
	Drifter WormType = iota // mostly wander
	Orbiter                 // mostly tangential
	Hunter                  // mostly toward the colony center
)

// NumWormTypes is the number of worm types.
const NumWormTypes = 3

// String returns the display name of the type.
func (t WormType) String() string {
	switch t {
	case Drifter:
		return "DRIFTER"
	case Orbiter:
		return "ORBITER"
	case Hunter:
		return "HUNTER"
	}
	return "UNKNOWN"
}

// Worm is a segmented creature orbiting its colony.
// Segment count and per-segment length are fixed at creation; only positions
// and headings evolve.
type Worm struct {
	ID         uint32   `inspect:"label"`
	Type       WormType `inspect:"label"`
	Hue        float64  `inspect:"label,fmt:%.0f"` // [0, 360)
	Width      float64  `inspect:"bar,max:18"`
	Speed      float64  `inspect:"bar,max:4"`
	TurnRate   float64  `inspect:"label,fmt:%.3f"`
	Phase      float64  `inspect:"skip"`
	Segments   []Segment
	Limbs      []Limb
	IsBoss     bool    `inspect:"bool"`
	OrbitDir   float64 `inspect:"label,fmt:%+.0f"` // -1 or +1
	OrbitBias  float64 `inspect:"label,fmt:%.2f"`  // radians added to the tangent offset
	OrbitTight float64 `inspect:"label,fmt:%.2f"`  // scales the preferred orbit radius
}

// Head returns the head position.
func (w *Worm) Head() r2.Vec {
	return w.Segments[0].Pos
}

// Heading returns the head heading.
func (w *Worm) Heading() float64 {
	return w.Segments[0].Heading
}

// Membership ties a worm entity to its owning colony.
type Membership struct {
	Colony int // index into the registry's colony list
}
