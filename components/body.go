package components

import "gonum.org/v1/gonum/spatial/r2"

// DashPhase is the boss dash state tag.
type DashPhase uint8

const (
	DashIdle    DashPhase = iota // counting down to the next dash
	DashDashing                  // impulse active and decaying
)

// String returns the display name of the phase.
func (p DashPhase) String() string {
	if p == DashDashing {
		return "dashing"
	}
	return "idle"
}

// BossDash holds the boss dash state machine. Only the boss entity carries it.
// Countdown is meaningful while Idle; TimeLeft, Velocity and Heading while Dashing.
type BossDash struct {
	Phase     DashPhase `inspect:"label"`
	Countdown float64   `inspect:"label,fmt:%.1fs"`
	TimeLeft  float64   `inspect:"label,fmt:%.2fs"`
	Velocity  r2.Vec    `inspect:"skip"`
	Heading   float64   `inspect:"label,fmt:%.2f"`
	Dashes    int       `inspect:"label"`
}
