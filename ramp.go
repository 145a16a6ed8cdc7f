package main

// economyControl is the part of the simulation control surface a ramp drives.
type economyControl interface {
	Buy(n int)
	AddVolume(v float64)
	AddMarketCap(v float64)
}

// economyRamp feeds the economy at constant per-second rates. Fractional
// buyers carry over between calls.
type economyRamp struct {
	CapRate    float64
	VolumeRate float64
	BuyerRate  float64

	buyerAcc float64
}

// Apply adds dt seconds worth of each rate. Non-positive dt is ignored.
func (r *economyRamp) Apply(c economyControl, dt float64) {
	if dt <= 0 {
		return
	}
	if r.CapRate > 0 {
		c.AddMarketCap(r.CapRate * dt)
	}
	if r.VolumeRate > 0 {
		c.AddVolume(r.VolumeRate * dt)
	}
	if r.BuyerRate > 0 {
		r.buyerAcc += r.BuyerRate * dt
		if n := int(r.buyerAcc); n > 0 {
			c.Buy(n)
			r.buyerAcc -= float64(n)
		}
	}
}
