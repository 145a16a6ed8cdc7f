package systems

import (
	"testing"

	"github.com/pthm-cable/wormsoup/components"
)

func TestShockwaveEmit(t *testing.T) {
	env := newTestEnv(t, 10)
	c := env.registry.Colony(0)

	env.shockwaves.Emit(c, 1.5)

	if len(c.Shockwaves) != 1 {
		t.Fatalf("colony has %d shockwaves, want 1", len(c.Shockwaves))
	}
	w := c.Shockwaves[0]
	want := components.Shockwave{Radius: 0, Growth: 2.6 + 1.5*1.2, Alpha: 0.85, Width: 3.5}
	if w != want {
		t.Errorf("shockwave = %+v, want %+v", w, want)
	}
}

func TestShockwaveDecayAndEviction(t *testing.T) {
	env := newTestEnv(t, 11)
	c := env.registry.Colony(0)
	colonies := env.registry.Colonies()
	env.shockwaves.Emit(c, 1)

	dt := 1.0 / 60
	prevAlpha, prevRadius := c.Shockwaves[0].Alpha, c.Shockwaves[0].Radius
	for tick := 0; tick < 200; tick++ {
		env.shockwaves.Update(colonies, dt)
		if len(c.Shockwaves) == 0 {
			// 0.85 * 0.96^n < 0.06 first at n = 65
			if tick+1 != 65 {
				t.Errorf("shockwave evicted after %d ticks, want 65", tick+1)
			}
			return
		}
		w := c.Shockwaves[0]
		if w.Alpha >= prevAlpha {
			t.Fatalf("alpha did not decrease: %v -> %v", prevAlpha, w.Alpha)
		}
		if w.Alpha < env.cfg.Shockwave.MinAlpha {
			t.Fatalf("shockwave with alpha %v still present", w.Alpha)
		}
		if w.Radius <= prevRadius {
			t.Fatalf("radius did not grow: %v -> %v", prevRadius, w.Radius)
		}
		prevAlpha, prevRadius = w.Alpha, w.Radius
	}
	t.Fatal("shockwave never evicted")
}

func TestShockwaveGiantStaggered(t *testing.T) {
	env := newTestEnv(t, 12)
	c := env.registry.Colony(0)
	colonies := env.registry.Colonies()

	env.shockwaves.EmitGiant(c)
	if len(c.Shockwaves) != 1 || env.shockwaves.Pending() != 2 {
		t.Fatalf("after giant: %d rings, %d pending; want 1 and 2", len(c.Shockwaves), env.shockwaves.Pending())
	}

	// Layers land at 0.09s and 0.18s
	dt := 0.05
	env.shockwaves.Update(colonies, dt) // t=0.05
	if len(c.Shockwaves) != 1 {
		t.Errorf("at 0.05s: %d rings, want 1", len(c.Shockwaves))
	}
	env.shockwaves.Update(colonies, dt) // t=0.10
	if len(c.Shockwaves) != 2 {
		t.Errorf("at 0.10s: %d rings, want 2", len(c.Shockwaves))
	}
	env.shockwaves.Update(colonies, dt) // t=0.15
	env.shockwaves.Update(colonies, dt) // t=0.20
	if len(c.Shockwaves) != 3 || env.shockwaves.Pending() != 0 {
		t.Errorf("at 0.20s: %d rings, %d pending; want 3 and 0", len(c.Shockwaves), env.shockwaves.Pending())
	}

	// Layers decrease in strength, so later ones are narrower
	if c.Shockwaves[0].Width <= c.Shockwaves[2].Width {
		t.Errorf("first layer width %v not wider than last %v", c.Shockwaves[0].Width, c.Shockwaves[2].Width)
	}
}

func TestScheduleOrder(t *testing.T) {
	var s Schedule
	c := &components.Colony{}
	s.Add(0.3, c, 3)
	s.Add(0.1, c, 1)
	s.Add(0.2, c, 2)

	var fired []float64
	fire := func(_ *components.Colony, strength float64) { fired = append(fired, strength) }

	s.Advance(0.15, fire)
	s.Advance(0.15, fire)
	s.Advance(0.15, fire)

	want := []float64{1, 2, 3}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired %v, want %v", fired, want)
			break
		}
	}
	if s.Len() != 0 {
		t.Errorf("%d entries left, want 0", s.Len())
	}
}
