package game

import (
	"testing"

	"github.com/pthm-cable/wormsoup/systems"
	"github.com/pthm-cable/wormsoup/telemetry"
)

func TestControlIgnoresNegatives(t *testing.T) {
	s := newTestSim(t, 10)
	s.Buy(4)
	s.AddVolume(1200)
	s.AddMarketCap(3000)

	s.Buy(-10)
	s.AddVolume(-500)
	s.AddMarketCap(-1e6)

	want := systems.EconomyState{Buyers: 4, Volume: 1200, MarketCap: 3000}
	if got := s.Economy(); got != want {
		t.Errorf("Economy() = %+v, want %+v", got, want)
	}
}

func TestSetEconomySanitizes(t *testing.T) {
	tests := []struct {
		name string
		in   systems.EconomyState
		want systems.EconomyState
	}{
		{"valid", systems.EconomyState{Buyers: 3, Volume: 10, MarketCap: 20}, systems.EconomyState{Buyers: 3, Volume: 10, MarketCap: 20}},
		{"negative buyers", systems.EconomyState{Buyers: -3, Volume: 10, MarketCap: 20}, systems.EconomyState{Volume: 10, MarketCap: 20}},
		{"all negative", systems.EconomyState{Buyers: -1, Volume: -1, MarketCap: -1}, systems.EconomyState{}},
	}
	s := newTestSim(t, 11)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetEconomy(tt.in)
			if got := s.Economy(); got != tt.want {
				t.Errorf("Economy() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGrowthFollowsEconomy(t *testing.T) {
	s := newTestSim(t, 12)
	s.SetEconomy(systems.EconomyState{Buyers: 20, Volume: 6000, MarketCap: 20000})
	s.Step(frame)
	if got := s.Growth(); got != 4 {
		t.Errorf("Growth() = %v, want 4", got)
	}
}

func TestSelectColony(t *testing.T) {
	s := newTestSim(t, 13)
	s.AddMarketCap(50000)
	s.Step(frame)
	if s.Registry().Len() != 3 {
		t.Fatalf("%d colonies, want 3", s.Registry().Len())
	}

	if s.SelectColony(0) {
		t.Error("reselecting colony 0 reported a change")
	}
	if s.SelectColony(3) || s.SelectColony(-1) {
		t.Error("out of range selection accepted")
	}
	if !s.SelectColony(2) || s.SelectedColony() != 2 {
		t.Errorf("selection = %d, want 2", s.SelectedColony())
	}

	if got := s.NextColony(); got != 0 {
		t.Errorf("NextColony() from last = %d, want 0", got)
	}
	if got := s.NextColony(); got != 1 {
		t.Errorf("NextColony() = %d, want 1", got)
	}
}

func TestHatchIntoSelected(t *testing.T) {
	s := newTestSim(t, 14)
	s.AddMarketCap(25000)
	s.Step(frame)
	s.SelectColony(1)
	before := len(s.Registry().Colony(1).Worms)

	s.SetEconomy(systems.EconomyState{MarketCap: 25000, Buyers: 100})
	run(s, 3)

	if got := len(s.Registry().Colony(1).Worms); got <= before {
		t.Errorf("selected colony has %d worms, had %d", got, before)
	}
	for _, e := range s.Events().Filter(telemetry.KindHatch) {
		if e.Colony != 1 {
			t.Errorf("hatch into colony %d, want 1", e.Colony)
		}
	}
}

func TestTriggerMutation(t *testing.T) {
	s := newTestSim(t, 15)
	for i := 0; i < 20; i++ {
		if !s.TriggerMutation() {
			t.Fatal("TriggerMutation on a populated colony reported no change")
		}
	}
	if got := s.Registry().Colony(0).MutationCount; got != 20 {
		t.Errorf("MutationCount = %d, want 20", got)
	}
	if got := s.Events().Total(telemetry.KindMutation); got != 20 {
		t.Errorf("%d mutation events, want 20", got)
	}
}
