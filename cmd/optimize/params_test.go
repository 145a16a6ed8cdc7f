package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/wormsoup/config"
)

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(got), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("%s: config %v, default %v", spec.Path, got[i], want[i])
		}
		if want[i] < spec.Min || want[i] > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Path, want[i], spec.Min, spec.Max)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}

	bounds := pv.Denormalize(make([]float64, pv.Dim()))
	for i, spec := range pv.Specs {
		if bounds[i] != spec.Min {
			t.Errorf("%s: Denormalize(0) = %v, want %v", spec.Name, bounds[i], spec.Min)
		}
	}
}

func TestApplyClampsAndRoundTrips(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector()

	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = spec.Max + 10
	}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamped to %v", spec.Path, got[i], spec.Max)
		}
	}
}

func TestEvaluateDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("runs full simulations")
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 10, []int64{1, 2}, cfg)

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 || fitness < -1 {
		t.Errorf("fitness %v outside [-1, 0]", fitness)
	}
	if q := fe.LastQuality(); q <= 0.2 {
		t.Errorf("default parameters scored quality %v", q)
	}
	if fe.BestSnapshot() == nil {
		t.Error("no snapshot recorded for the best run")
	}
}
