package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
)

func TestNewColonyRegistry(t *testing.T) {
	env := newTestEnv(t, 1)
	r := env.registry

	if r.Len() != 1 {
		t.Fatalf("registry has %d colonies, want 1", r.Len())
	}
	if got := r.TotalWorms(); got != env.cfg.Colony.InitialWorms {
		t.Errorf("founding colony has %d worms, want %d", got, env.cfg.Colony.InitialWorms)
	}

	c := r.Colony(0)
	if c.Pos != (r2.Vec{}) {
		t.Errorf("founding colony at %v, want origin", c.Pos)
	}
	if n := len(c.Nodes); n < 4 || n > 7 {
		t.Errorf("colony has %d decorative nodes, want 4..7", n)
	}
}

func TestColonyDNARanges(t *testing.T) {
	env := newTestEnv(t, 2)
	for i := 0; i < 200; i++ {
		c := env.registry.AddColony(r2.Vec{}, float64(i*37-500), env.rng)
		d := c.DNA
		if d.Hue < 0 || d.Hue >= 360 {
			t.Fatalf("hue %v out of [0, 360)", d.Hue)
		}
		if d.Chaos < components.MinChaos || d.Chaos > components.MaxChaos {
			t.Fatalf("chaos %v out of range", d.Chaos)
		}
		if d.Drift < components.MinDrift || d.Drift > components.MaxDrift {
			t.Fatalf("drift %v out of range", d.Drift)
		}
		if d.Aura < components.MinAura || d.Aura > components.MaxAura {
			t.Fatalf("aura %v out of range", d.Aura)
		}
	}
}

func TestSpawnWorm(t *testing.T) {
	env := newTestEnv(t, 3)
	r := env.registry
	wc := env.cfg.Worm

	for _, large := range []bool{false, true} {
		for i := 0; i < 50; i++ {
			e, ok := r.SpawnWorm(0, large, env.rng)
			if !ok {
				t.Fatal("SpawnWorm into colony 0 failed")
			}
			w := r.Worm(e)
			if len(w.Segments) < 2 {
				t.Fatalf("worm has %d segments, want >= 2", len(w.Segments))
			}
			if w.Width <= 0 || w.Speed <= 0 || w.TurnRate <= 0 {
				t.Fatalf("worm has non-positive trait: %+v", w)
			}
			if large && w.Width < wc.LargeMinWidth {
				t.Errorf("large worm width %v below %v", w.Width, wc.LargeMinWidth)
			}
			if w.OrbitDir != 1 && w.OrbitDir != -1 {
				t.Errorf("orbit dir %v, want +/-1", w.OrbitDir)
			}
			for _, l := range w.Limbs {
				if l.Attach < 1 || l.Attach >= len(w.Segments) {
					t.Errorf("limb attached at %d of %d segments", l.Attach, len(w.Segments))
				}
			}
		}
	}
}

func TestSpawnWormIDsUniqueAndOrdered(t *testing.T) {
	env := newTestEnv(t, 4)
	r := env.registry
	for i := 0; i < 20; i++ {
		r.SpawnWorm(0, false, env.rng)
	}

	c := r.Colony(0)
	var last uint32
	for _, e := range c.Worms {
		id := r.Worm(e).ID
		if id <= last {
			t.Fatalf("worm ids not increasing in spawn order: %d after %d", id, last)
		}
		last = id
	}
}

func TestSpawnWormMissingColony(t *testing.T) {
	env := newTestEnv(t, 5)
	before := env.registry.TotalWorms()
	if _, ok := env.registry.SpawnWorm(7, false, env.rng); ok {
		t.Error("SpawnWorm into missing colony reported success")
	}
	if env.registry.TotalWorms() != before {
		t.Error("SpawnWorm into missing colony changed the population")
	}
}

func TestAddLimbCap(t *testing.T) {
	env := newTestEnv(t, 6)
	e, _ := env.registry.SpawnWorm(0, false, env.rng)
	w := env.registry.Worm(e)

	for i := 0; i < 40; i++ {
		env.registry.AddLimb(w, env.rng)
	}
	if len(w.Limbs) != env.cfg.Worm.MaxLimbs {
		t.Errorf("worm has %d limbs, want cap %d", len(w.Limbs), env.cfg.Worm.MaxLimbs)
	}
}

func TestDriftStaysBounded(t *testing.T) {
	env := newTestEnv(t, 7)
	c := env.registry.Colony(0)
	maxSpeed := env.cfg.Colony.MaxDriftSpeed * c.DNA.Drift

	for i := 0; i < 6000; i++ {
		env.registry.Drift(1.0/60, env.rng)
		if s := r2.Norm(c.Vel); s > maxSpeed+1e-9 {
			t.Fatalf("drift speed %v exceeds %v", s, maxSpeed)
		}
	}
	if d := r2.Norm(r2.Sub(c.Pos, c.Home)); d > 1000 {
		t.Errorf("colony drifted %v from home", d)
	}
}

func TestFindWorm(t *testing.T) {
	env := newTestEnv(t, 5)
	r := env.registry

	e, ok := r.SpawnWorm(0, false, env.rng)
	if !ok {
		t.Fatal("spawn failed")
	}
	id := r.Worm(e).ID

	got, ok := r.FindWorm(id)
	if !ok || got != e {
		t.Errorf("FindWorm(%d) = (%v, %v), want (%v, true)", id, got, ok, e)
	}
	if _, ok := r.FindWorm(9999); ok {
		t.Error("FindWorm should miss an unknown ID")
	}
}
