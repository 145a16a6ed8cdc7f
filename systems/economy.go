package systems

import "github.com/pthm-cable/wormsoup/config"

// EconomyState holds the economic counters that drive growth.
// The core only reads it; the control surface is its sole writer and clamps
// inputs to be non-negative.
type EconomyState struct {
	Buyers    int
	Volume    float64
	MarketCap float64
}

// GrowthScore combines the counters into one scalar. It is non-decreasing in
// each counter.
func (e EconomyState) GrowthScore(cfg config.EconomyConfig) float64 {
	return e.MarketCap/cfg.CapDivisor + e.Volume/cfg.VolumeDivisor + float64(e.Buyers)/cfg.BuyerDivisor
}

// Sanitized returns a copy with negative counters raised to zero.
func (e EconomyState) Sanitized() EconomyState {
	if e.Buyers < 0 {
		e.Buyers = 0
	}
	if e.Volume < 0 {
		e.Volume = 0
	}
	if e.MarketCap < 0 {
		e.MarketCap = 0
	}
	return e
}
