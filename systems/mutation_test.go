package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wormsoup/telemetry"
)

func TestMutateRandomKeepsTraitsInRange(t *testing.T) {
	env := newTestEnv(t, 30)
	for i := 0; i < 10; i++ {
		env.registry.SpawnWorm(0, i%3 == 0, env.rng)
	}
	mc := env.cfg.Mutation

	kinds := make(map[MutationKind]int)
	for i := 0; i < 5000; i++ {
		res, ok := env.mutation.MutateRandom(env.rng)
		if !ok {
			t.Fatal("MutateRandom failed on a populated registry")
		}
		kinds[res.Kind]++

		for _, e := range env.registry.Colony(0).Worms {
			w := env.registry.Worm(e)
			if w.Width < mc.MinWidth || w.Width > mc.RareMaxWidth {
				t.Fatalf("width %v out of [%v, %v]", w.Width, mc.MinWidth, mc.RareMaxWidth)
			}
			if w.Hue < 0 || w.Hue >= 360 {
				t.Fatalf("hue %v out of [0, 360)", w.Hue)
			}
			if w.Speed > env.cfg.Worm.SpeedCap {
				t.Fatalf("speed %v above cap", w.Speed)
			}
			if len(w.Limbs) > env.cfg.Worm.MaxLimbs {
				t.Fatalf("%d limbs above cap", len(w.Limbs))
			}
		}
	}

	for k := MutateColor; k <= MutateRare; k++ {
		if kinds[k] == 0 {
			t.Errorf("mutation kind %s never fired in 5000 runs", k)
		}
	}
	if got := env.registry.Colony(0).MutationCount; got != 5000 {
		t.Errorf("mutation count = %d, want 5000", got)
	}
	if got := env.countKind(telemetry.KindMutation); got != 5000 {
		t.Errorf("%d mutation events, want 5000", got)
	}
}

func TestCommonWidthCap(t *testing.T) {
	env := newTestEnv(t, 31)
	e, _ := env.registry.SpawnWorm(0, false, env.rng)
	w := env.registry.Worm(e)

	for i := 0; i < 500; i++ {
		env.mutation.common(w, env.rng)
		if w.Width > env.cfg.Mutation.MaxWidth {
			t.Fatalf("common mutation pushed width to %v", w.Width)
		}
	}
}

func TestCommonWidthKeepsRareGrowth(t *testing.T) {
	env := newTestEnv(t, 32)
	e, _ := env.registry.SpawnWorm(0, false, env.rng)
	w := env.registry.Worm(e)
	w.Width = 17.5

	for i := 0; i < 200; i++ {
		env.mutation.common(w, env.rng)
	}
	if w.Width != 17.5 {
		t.Errorf("common mutation changed rare-grown width to %v", w.Width)
	}
}

func TestMutateRandomEmpty(t *testing.T) {
	env := newTestEnv(t, 33)
	c := env.registry.Colony(0)
	c.Worms = []ecs.Entity{}

	if _, ok := env.mutation.MutateRandom(env.rng); ok {
		t.Error("MutateRandom on an empty colony reported success")
	}
	if c.MutationCount != 0 {
		t.Errorf("mutation count = %d, want 0", c.MutationCount)
	}
	if len(env.events) != 0 {
		t.Errorf("%d events emitted by a no-op mutation", len(env.events))
	}
}

func TestMutationInterval(t *testing.T) {
	env := newTestEnv(t, 34)
	tests := []struct {
		growth float64
		want   float64
	}{
		{0, 2.1},
		{10, 1.3},
		{21, 0.42},
		{1000, 0.42},
	}
	for _, tt := range tests {
		if got := env.mutation.Interval(tt.growth); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Interval(%v) = %v, want %v", tt.growth, got, tt.want)
		}
	}
}

func TestMutationTimerFireRate(t *testing.T) {
	env := newTestEnv(t, 35)
	for i := 0; i < 5; i++ {
		env.registry.SpawnWorm(0, false, env.rng)
	}

	// The interval clamps to 0.42s, so at dt=0.05 the timer elapses every 9 ticks
	for i := 0; i < 84000; i++ {
		env.mutation.Update(100, 0.05, env.rng)
	}

	fired := env.registry.Colony(0).MutationCount
	firings := 84000 / 9
	ratio := float64(fired) / float64(firings)
	if ratio < 0.58 || ratio > 0.66 {
		t.Errorf("mutation fired on %.3f of timer firings, want ~0.62", ratio)
	}
}
