package game

import (
	"log/slog"

	"github.com/pthm-cable/wormsoup/systems"
)

// Buy records n buyers. Negative n is ignored.
func (s *Simulation) Buy(n int) {
	if n > 0 {
		s.econ.Buyers += n
	}
}

// AddVolume adds trading volume. Negative v is ignored.
func (s *Simulation) AddVolume(v float64) {
	if v > 0 {
		s.econ.Volume += v
	}
}

// AddMarketCap adds market cap. Negative v is ignored.
func (s *Simulation) AddMarketCap(v float64) {
	if v > 0 {
		s.econ.MarketCap += v
	}
}

// SetEconomy replaces the counters, raising negatives to zero.
func (s *Simulation) SetEconomy(e systems.EconomyState) {
	s.econ = e.Sanitized()
}

// Economy returns the current counters.
func (s *Simulation) Economy() systems.EconomyState {
	return s.econ
}

// TriggerMutation mutates a random worm now. Reports whether a worm changed.
func (s *Simulation) TriggerMutation() bool {
	s.bus.SetClock(s.tick, s.time)
	res, ok := s.mutation.MutateRandom(s.rng)
	if ok {
		slog.Debug("manual mutation", "kind", res.Kind.String(), "colony", res.Colony, "worm", res.WormID)
	}
	return ok
}

// SelectColony selects colony i for hatching and camera follow. Out of range
// indices are ignored. Reports whether the selection changed.
func (s *Simulation) SelectColony(i int) bool {
	if s.registry.Colony(i) == nil || i == s.selected {
		return false
	}
	s.selected = i
	return true
}

// SelectedColony returns the selected colony index.
func (s *Simulation) SelectedColony() int {
	return s.selected
}

// NextColony advances the selection, wrapping to colony 0, and returns it.
func (s *Simulation) NextColony() int {
	s.selected = (s.selected + 1) % s.registry.Len()
	return s.selected
}
