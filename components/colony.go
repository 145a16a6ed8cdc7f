package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Temperament flavors a colony's behavior and look.
type Temperament uint8

const (
	Calm Temperament = iota
	Aggressive
	Chaotic
	Toxic
)

// NumTemperaments is the number of temperaments.
const NumTemperaments = 4

func (t Temperament) String() string {
	return [...]string{"CALM", "AGGRESSIVE", "CHAOTIC", "TOXIC"}[t%NumTemperaments]
}

// Biome is the visual environment of a colony.
type Biome uint8

const (
	Abyss Biome = iota
	Reef
	Vent
	Bloom
	Void
)

// NumBiomes is the number of biomes.
const NumBiomes = 5

func (b Biome) String() string {
	return [...]string{"ABYSS", "REEF", "VENT", "BLOOM", "VOID"}[b%NumBiomes]
}

// Style is the body style worms of a colony are drawn with.
type Style uint8

const (
	Ribbon Style = iota
	Beaded
	Spined
	Glass
	Ember
)

// NumStyles is the number of styles.
const NumStyles = 5

func (s Style) String() string {
	return [...]string{"RIBBON", "BEADED", "SPINED", "GLASS", "EMBER"}[s%NumStyles]
}

// DNA holds a colony's heritable parameters.
type DNA struct {
	Hue         float64 // [0, 360)
	Chaos       float64 // [0.55, 1.35] scales wander jitter
	Drift       float64 // [0.55, 1.35] scales colony random walk
	Aura        float64 // [0.95, 1.75] scales orbit and leash radii
	Temperament Temperament
	Biome       Biome
	Style       Style
}

// DNA trait ranges.
const (
	MinChaos = 0.55
	MaxChaos = 1.35
	MinDrift = 0.55
	MaxDrift = 1.35
	MinAura  = 0.95
	MaxAura  = 1.75
)

// Node is a decorative point orbiting the colony center.
type Node struct {
	Angle  float64
	Radius float64
	Size   float64
	Phase  float64
}

// Shockwave is an expanding, fading ring.
type Shockwave struct {
	Radius float64
	Growth float64 // radius gained per reference frame
	Alpha  float64 // (0, 1]
	Width  float64
}

// Colony is a drifting anchor that owns an ordered list of worms.
type Colony struct {
	ID            int
	Pos           r2.Vec
	Home          r2.Vec // spawn point; drift is softly tethered here
	Vel           r2.Vec
	DNA           DNA
	Nodes         []Node
	Worms         []ecs.Entity // spawn order
	Shockwaves    []Shockwave
	MutationCount int
}
