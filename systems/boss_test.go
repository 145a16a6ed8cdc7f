package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/telemetry"
)

func TestEnsureBossThreshold(t *testing.T) {
	env := newTestEnv(t, 50)

	if env.boss.EnsureBoss(EconomyState{MarketCap: 49999}, env.rng) {
		t.Fatal("boss spawned below threshold")
	}
	if env.boss.Dash() != nil {
		t.Error("Dash() non-nil before the boss exists")
	}
	if !env.boss.EnsureBoss(EconomyState{MarketCap: 50000}, env.rng) {
		t.Fatal("boss did not spawn at threshold")
	}
	if env.boss.EnsureBoss(EconomyState{MarketCap: 90000}, env.rng) {
		t.Error("second boss spawned")
	}

	if got := env.bossCount(); got != 1 {
		t.Errorf("%d bosses, want 1", got)
	}
	if got := env.countKind(telemetry.KindBoss); got != 1 {
		t.Errorf("%d boss events, want 1", got)
	}

	e, ok := env.boss.Entity()
	if !ok {
		t.Fatal("Entity() reports no boss")
	}
	if c := env.registry.ColonyOf(e); c == nil || c.ID != 0 {
		t.Errorf("boss not in colony 0")
	}
	w := env.registry.Worm(e)
	if w.Width != env.cfg.Boss.Width || len(w.Segments) != env.cfg.Boss.Segments {
		t.Errorf("boss body = width %v, %d segments", w.Width, len(w.Segments))
	}

	// Giant burst: one ring now, the rest staggered
	if got := len(env.registry.Colony(0).Shockwaves); got != 1 {
		t.Errorf("%d immediate shockwaves, want 1", got)
	}
	if got := env.shockwaves.Pending(); got != len(env.cfg.Shockwave.GiantStrengths)-1 {
		t.Errorf("%d pending shockwaves, want %d", got, len(env.cfg.Shockwave.GiantStrengths)-1)
	}
}

func TestBossIdleCooldown(t *testing.T) {
	env := newTestEnv(t, 51)
	env.boss.EnsureBoss(EconomyState{MarketCap: 50000}, env.rng)

	dash := env.boss.Dash()
	if dash.Phase != components.DashIdle {
		t.Fatalf("new boss phase = %s, want idle", dash.Phase)
	}
	if dash.Countdown < env.cfg.Boss.MinCooldown || dash.Countdown > env.cfg.Boss.MaxCooldown {
		t.Errorf("cooldown %v out of range", dash.Countdown)
	}

	before := dash.Countdown
	env.boss.Update(0.5, env.rng)
	if got := env.boss.Dash().Countdown; got < before-0.5-1e-9 || got > before-0.5+1e-9 {
		t.Errorf("countdown = %v, want %v", got, before-0.5)
	}
}

func TestBossDashCycle(t *testing.T) {
	env := newTestEnv(t, 52)
	env.boss.EnsureBoss(EconomyState{MarketCap: 50000}, env.rng)
	e, _ := env.boss.Entity()
	dt := 0.05

	// Idle -> Dashing within the longest cooldown
	ticks := 0
	for env.boss.Dash().Phase == components.DashIdle {
		env.boss.Update(dt, env.rng)
		ticks++
		if float64(ticks)*dt > env.cfg.Boss.MaxCooldown+dt {
			t.Fatal("boss never dashed")
		}
	}

	dash := env.boss.Dash()
	if dash.Dashes != 1 {
		t.Errorf("dash count = %d, want 1", dash.Dashes)
	}
	if got := env.countKind(telemetry.KindDash); got != 1 {
		t.Errorf("%d dash events, want 1", got)
	}
	if dash.TimeLeft <= 0 || dash.TimeLeft > env.cfg.Boss.MaxDuration {
		t.Errorf("time left %v out of range", dash.TimeLeft)
	}
	if speed := r2.Norm(dash.Velocity); speed > env.cfg.Boss.MaxImpulse+1e-9 {
		t.Errorf("dash speed %v above max impulse", speed)
	}

	head := env.registry.Worm(e).Head()
	env.boss.Update(dt, env.rng)
	if moved := r2.Norm(r2.Sub(env.registry.Worm(e).Head(), head)); moved < 1 {
		t.Errorf("dashing head moved %v", moved)
	}

	// Dashing -> Idle within the longest duration
	ticks = 0
	for env.boss.Dash().Phase == components.DashDashing {
		env.boss.Update(dt, env.rng)
		ticks++
		if float64(ticks)*dt > env.cfg.Boss.MaxDuration+dt {
			t.Fatal("dash never ended")
		}
	}

	dash = env.boss.Dash()
	if dash.Velocity != (r2.Vec{}) {
		t.Errorf("idle velocity = %v, want zero", dash.Velocity)
	}
	if dash.Countdown < env.cfg.Boss.MinCooldown || dash.Countdown > env.cfg.Boss.MaxCooldown {
		t.Errorf("rerolled cooldown %v out of range", dash.Countdown)
	}
}

func TestBossStaysLeashed(t *testing.T) {
	env := newTestEnv(t, 53)
	env.boss.EnsureBoss(EconomyState{MarketCap: 50000}, env.rng)
	e, _ := env.boss.Entity()
	c := env.registry.Colony(0)
	limit := env.steering.LeashRadius(c) + 150

	// Ten minutes of dashing without regular steering
	for i := 0; i < 12000; i++ {
		env.boss.Update(0.05, env.rng)
		if d := r2.Norm(r2.Sub(env.registry.Worm(e).Head(), c.Pos)); d > limit {
			t.Fatalf("tick %d: boss %v from colony, limit %v", i, d, limit)
		}
	}
	if env.boss.Dash().Dashes < 30 {
		t.Errorf("only %d dashes in ten minutes", env.boss.Dash().Dashes)
	}
}

func TestBossUpdateBeforeSpawn(t *testing.T) {
	env := newTestEnv(t, 54)
	env.boss.Update(1, env.rng)
	if env.boss.Spawned() {
		t.Error("Update spawned a boss")
	}
	if len(env.events) != 0 {
		t.Errorf("%d events before spawn", len(env.events))
	}
}
