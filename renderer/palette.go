package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/components"
)

// biomeBase is the background tint per biome.
var biomeBase = [components.NumBiomes]rl.Color{
	components.Abyss: {R: 6, G: 10, B: 22, A: 255},
	components.Reef:  {R: 8, G: 26, B: 30, A: 255},
	components.Vent:  {R: 26, G: 12, B: 8, A: 255},
	components.Bloom: {R: 18, G: 10, B: 26, A: 255},
	components.Void:  {R: 4, G: 4, B: 6, A: 255},
}

// BiomeColor returns the background tint of a biome.
func BiomeColor(b components.Biome) rl.Color {
	return biomeBase[b%components.NumBiomes]
}

// WormColor returns the body color for a hue in degrees.
func WormColor(hue float64, alpha float32) rl.Color {
	return rl.Fade(rl.ColorFromHSV(float32(wrapDegrees(hue)), 0.75, 0.95), alpha)
}

// temperamentSaturation keeps aggressive and toxic colonies vivid and calm
// ones pale.
func temperamentSaturation(t components.Temperament) float32 {
	switch t {
	case components.Aggressive:
		return 0.9
	case components.Toxic:
		return 0.85
	case components.Chaotic:
		return 0.7
	}
	return 0.5
}

// ColonyColor returns the core color of a colony.
func ColonyColor(dna components.DNA, alpha float32) rl.Color {
	return rl.Fade(rl.ColorFromHSV(float32(wrapDegrees(dna.Hue)), temperamentSaturation(dna.Temperament), 0.9), alpha)
}

func wrapDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
