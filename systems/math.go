package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampInt clamps an int between min and max.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Angle normalization functions

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// wrapHue wraps a hue to [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// angleDiff returns the signed shortest rotation from a to b, in [-Pi, Pi].
func angleDiff(a, b float64) float64 {
	return normalizeAngle(b - a)
}

// lerpAngle moves a toward b along the shortest arc by fraction t.
func lerpAngle(a, b, t float64) float64 {
	return normalizeAngle(a + angleDiff(a, b)*t)
}

// Vector helpers

// unit returns the unit vector pointing at angle.
func unit(angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// angleOf returns the direction of v.
func angleOf(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// frames converts dt to reference frames so per-frame constants scale with dt.
func frames(dt, fps float64) float64 {
	return dt * fps
}

// Random helpers

// randRange returns a uniform value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randIntRange returns a uniform int in [lo, hi].
func randIntRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// randSign returns -1 or +1.
func randSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
