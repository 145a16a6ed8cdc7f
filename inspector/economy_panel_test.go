package inspector

import (
	"testing"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

func testDivisors() config.EconomyConfig {
	return config.EconomyConfig{CapDivisor: 20000, VolumeDivisor: 6000, BuyerDivisor: 10}
}

func TestEconomyPanelHistoryOrder(t *testing.T) {
	p := NewEconomyPanel(1280, 800, testDivisors())

	for i := 0; i < economyHistorySize+5; i++ {
		p.Update(telemetry.WindowStats{MarketCap: float64(i)})
	}

	if p.Len() != economyHistorySize {
		t.Fatalf("Len = %d, want %d", p.Len(), economyHistorySize)
	}
	caps := p.Series(seriesMarketCap)
	if caps[0] != 5 {
		t.Errorf("oldest cap = %v, want 5", caps[0])
	}
	if last := caps[len(caps)-1]; last != economyHistorySize+4 {
		t.Errorf("newest cap = %v, want %d", last, economyHistorySize+4)
	}
	for i := 1; i < len(caps); i++ {
		if caps[i] <= caps[i-1] {
			t.Fatalf("series not oldest-first at %d: %v <= %v", i, caps[i], caps[i-1])
		}
	}
}

func TestEconomyPanelContributions(t *testing.T) {
	p := NewEconomyPanel(1280, 800, testDivisors())
	p.Update(telemetry.WindowStats{MarketCap: 40000, Volume: 3000, Buyers: 5, Growth: 3})

	c, v, b := p.Contributions()
	if c != 2 || v != 0.5 || b != 0.5 {
		t.Errorf("contributions = (%v, %v, %v), want (2, 0.5, 0.5)", c, v, b)
	}

	zero := NewEconomyPanel(1280, 800, config.EconomyConfig{})
	zero.Update(telemetry.WindowStats{MarketCap: 40000})
	if c, _, _ := zero.Contributions(); c != 0 {
		t.Errorf("zero divisor contribution = %v, want 0", c)
	}
}

func TestEconomyPanelSeriesRange(t *testing.T) {
	p := NewEconomyPanel(1280, 800, testDivisors())

	if lo, hi := p.seriesRange(marketSeries); lo != 0 || hi != 1 {
		t.Errorf("empty range = (%v, %v), want (0, 1)", lo, hi)
	}

	p.Update(telemetry.WindowStats{MarketCap: 100, Volume: 0})
	p.Update(telemetry.WindowStats{MarketCap: 200, Volume: 50})

	lo, hi := p.seriesRange(marketSeries)
	if lo != -20 || hi != 220 {
		t.Errorf("range = (%v, %v), want (-20, 220)", lo, hi)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{5, "5.0"},
		{250, "250"},
		{2500, "2.5k"},
		{25000, "25k"},
		{2500000, "2.5M"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.v); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
