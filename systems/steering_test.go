package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
)

// placedWorm returns a worm whose head sits at pos with the body trailing
// along -X.
func placedWorm(env *testEnv, pos r2.Vec, heading float64) *components.Worm {
	e, _ := env.registry.SpawnWorm(0, false, env.rng)
	w := env.registry.Worm(e)
	w.Speed = 1
	w.Segments = layoutSegments(pos, heading, len(w.Segments), w.Segments[0].Length)
	return w
}

func TestLeashPullsBack(t *testing.T) {
	tests := []struct {
		name     string
		typ      components.WormType
		speed    float64
		turnRate float64
	}{
		{"slow", components.Orbiter, 1, 0.2},
		{"drifter slow turn", components.Drifter, 1, 0.05},
		{"drifter speed 2", components.Drifter, 2, 0.05},
		{"drifter speed 3", components.Drifter, 3, 0.05},
		{"drifter at speed cap", components.Drifter, -1, 0.05},
		{"hunter at speed cap", components.Hunter, -1, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 20)
			env.steering.cfg.Jitter = 0
			env.steering.cfg.Wobble = 0
			c := env.registry.Colony(0)
			c.Pos = r2.Vec{}
			c.DNA.Aura = 1 // leash = 330 + 60 = 390

			if got := env.steering.LeashRadius(c); got != 390 {
				t.Fatalf("leash radius = %v, want 390", got)
			}

			// Pointing straight away from the colony is the worst case
			w := placedWorm(env, r2.Vec{X: 400}, 0)
			w.Type = tt.typ
			w.TurnRate = tt.turnRate
			w.Speed = tt.speed
			if tt.speed < 0 {
				w.Speed = env.cfg.Worm.SpeedCap
			}

			for tick := 0; tick < 5; tick++ {
				before := r2.Norm(r2.Sub(w.Head(), c.Pos))
				env.steering.Steer(w, c, 0, 1.0/60, env.rng)
				after := r2.Norm(r2.Sub(w.Head(), c.Pos))
				if before > 390 && after >= before {
					t.Fatalf("tick %d: distance %v -> %v, want a decrease", tick, before, after)
				}
			}
		})
	}
}

func TestLeashUndoesOutwardStep(t *testing.T) {
	env := newTestEnv(t, 24)
	c := env.registry.Colony(0)
	c.Pos = r2.Vec{}
	c.DNA.Aura = 1
	w := placedWorm(env, r2.Vec{X: 410}, 0)

	// The head just moved 20 units straight out, from 390
	if !env.steering.Leash(w, c, r2.Vec{X: 20}, 1.0/60) {
		t.Fatal("worm beyond the leash was not leashed")
	}
	if d := r2.Norm(w.Head()); d > 390+1e-9 {
		t.Errorf("distance = %v, want at most 390", d)
	}
}

func TestLeashIgnoresWormsInside(t *testing.T) {
	env := newTestEnv(t, 21)
	c := env.registry.Colony(0)
	c.DNA.Aura = 1
	w := placedWorm(env, r2.Vec{X: 100}, 1)

	before := w.Segments[0]
	if env.steering.Leash(w, c, r2.Vec{X: 1}, 1.0/60) {
		t.Error("worm inside the leash was leashed")
	}
	if w.Segments[0] != before {
		t.Error("Leash moved a worm inside the leash")
	}
}

func TestSteerTurnsShortestArc(t *testing.T) {
	env := newTestEnv(t, 22)
	c := env.registry.Colony(0)
	c.DNA.Chaos = components.MinChaos
	env.steering.cfg.Jitter = 0
	env.steering.cfg.Wobble = 0

	// Far outside the ring, directly right of the colony, heading just past
	// +Pi. The approach heading is Pi, so the short way is a small turn.
	w := placedWorm(env, r2.Vec{X: 380}, -math.Pi+0.2)
	w.Type = components.Hunter
	before := w.Heading()

	env.steering.Steer(w, c, 0, 1.0/60, env.rng)

	turned := math.Abs(angleDiff(before, w.Heading()))
	if turned > 1.0 {
		t.Errorf("heading turned %v rad, want a short-arc turn", turned)
	}
}

func TestSteerAdvancesHead(t *testing.T) {
	env := newTestEnv(t, 23)
	c := env.registry.Colony(0)
	w := placedWorm(env, r2.Vec{X: 200}, math.Pi/2)

	before := w.Head()
	dt := 1.0 / 60
	env.steering.Steer(w, c, 0, dt, env.rng)

	moved := r2.Norm(r2.Sub(w.Head(), before))
	want := w.Speed * env.cfg.Steering.SpeedFactor * dt
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("head moved %v, want %v", moved, want)
	}
}

func TestSteerBossMovesDouble(t *testing.T) {
	env := newTestEnv(t, 24)
	c := env.registry.Colony(0)
	w := placedWorm(env, r2.Vec{X: 200}, math.Pi/2)
	w.IsBoss = true

	before := w.Head()
	dt := 1.0 / 60
	env.steering.Steer(w, c, 0, dt, env.rng)

	moved := r2.Norm(r2.Sub(w.Head(), before))
	want := 2 * w.Speed * env.cfg.Steering.SpeedFactor * dt
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("boss head moved %v, want %v", moved, want)
	}
}

func TestRingPullBias(t *testing.T) {
	env := newTestEnv(t, 25)
	c := env.registry.Colony(0)
	env.steering.cfg.Jitter = 0
	env.steering.cfg.Wobble = 0

	tests := []struct {
		name   string
		radius float64
	}{
		{"outside ring turns inward", 360},
		{"inside ring turns tangential", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := placedWorm(env, r2.Vec{X: tt.radius}, math.Pi/2)
			w.Type = components.Orbiter
			w.OrbitDir = 1
			w.OrbitBias = 0
			w.OrbitTight = 1

			pref := env.steering.PreferredRadius(w, c)
			outside := tt.radius > pref

			// Heading +Y is already tangential; outside the ring the blend
			// pulls it toward -X (the center), inside it stays tangential.
			for i := 0; i < 30; i++ {
				w.Segments[0].Pos = r2.Vec{X: tt.radius}
				env.steering.Steer(w, c, 0, 1.0/60, env.rng)
			}
			dirX := math.Cos(w.Heading())
			if outside && dirX > -0.1 {
				t.Errorf("outside ring heading x-component %v, want inward (< -0.1)", dirX)
			}
			if !outside && dirX < -0.5 {
				t.Errorf("inside ring heading x-component %v, want mostly tangential", dirX)
			}
		})
	}
}

func TestSteeringUpdateKeepsWormsNear(t *testing.T) {
	env := newTestEnv(t, 26)
	for i := 0; i < 20; i++ {
		env.registry.SpawnWorm(0, i%4 == 0, env.rng)
	}
	chain := NewChainSystem(env.world, env.cfg)
	colonies := env.registry.Colonies()

	dt := 1.0 / 60
	for tick := 0; tick < 3000; tick++ {
		env.steering.Update(colonies, float64(tick)*dt, dt, env.rng)
		chain.Update()
	}

	c := colonies[0]
	leash := env.steering.LeashRadius(c)
	for _, e := range c.Worms {
		w := env.registry.Worm(e)
		d := r2.Norm(r2.Sub(w.Head(), c.Pos))
		if d > leash+20 {
			t.Errorf("worm %d at distance %v, leash %v", w.ID, d, leash)
		}
		for _, s := range w.Segments {
			if math.IsNaN(s.Pos.X) || math.IsNaN(s.Pos.Y) {
				t.Fatalf("worm %d has NaN segment", w.ID)
			}
		}
	}
}
