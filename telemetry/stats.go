package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Economy at window end
	Buyers    int     `csv:"buyers"`
	Volume    float64 `csv:"volume"`
	MarketCap float64 `csv:"market_cap"`
	Growth    float64 `csv:"growth"`

	// Population at window end
	Colonies   int  `csv:"colonies"`
	Worms      int  `csv:"worms"`
	BossAlive  bool `csv:"boss_alive"`
	Shockwaves int  `csv:"shockwaves"`

	// Events during window
	Hatches       int `csv:"hatches"`
	Splits        int `csv:"splits"`
	Mutations     int `csv:"mutations"`
	RareMutations int `csv:"rare_mutations"`
	Dashes        int `csv:"dashes"`

	// Trait distributions (sampled at window end)
	Width Distribution `csv:"width"`
	Speed Distribution `csv:"speed"`
	Limbs Distribution `csv:"limbs"`
}

// Distribution summarizes a sample of trait values.
type Distribution struct {
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`
}

// Percentile calculates the p-th percentile of a sorted slice with linear
// interpolation between ranks. p should be in [0, 1]. Returns 0 if the slice
// is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// Summarize computes the population mean, standard deviation and the 10th,
// 50th and 90th percentiles of values. values is not modified.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer.
func (d Distribution) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mean", d.Mean),
		slog.Float64("std", d.Std),
		slog.Float64("p50", d.P50),
		slog.Float64("p90", d.P90),
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("market_cap", s.MarketCap),
		slog.Float64("growth", s.Growth),
		slog.Int("colonies", s.Colonies),
		slog.Int("worms", s.Worms),
		slog.Bool("boss", s.BossAlive),
		slog.Int("hatches", s.Hatches),
		slog.Int("splits", s.Splits),
		slog.Int("mutations", s.Mutations),
		slog.Int("rare_mutations", s.RareMutations),
		slog.Int("dashes", s.Dashes),
		slog.Any("width", s.Width),
		slog.Any("speed", s.Speed),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
