package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// testEnv bundles a registry and the systems that act on it.
type testEnv struct {
	cfg        *config.Config
	world      *ecs.World
	rng        *rand.Rand
	bus        *telemetry.Bus
	events     []telemetry.Event
	registry   *ColonyRegistry
	shockwaves *ShockwaveSystem
	steering   *SteeringSystem
	population *PopulationSystem
	mutation   *MutationSystem
	boss       *BossSystem
}

func newTestEnv(t *testing.T, seed int64) *testEnv {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	env := &testEnv{
		cfg:   cfg,
		world: ecs.NewWorld(),
		rng:   rand.New(rand.NewSource(seed)),
		bus:   telemetry.NewBus(),
	}
	env.bus.Subscribe(func(e telemetry.Event) {
		env.events = append(env.events, e)
	})
	env.registry = NewColonyRegistry(env.world, cfg, env.rng)
	env.shockwaves = NewShockwaveSystem(cfg)
	env.steering = NewSteeringSystem(env.world, cfg)
	env.population = NewPopulationSystem(cfg, env.registry, env.shockwaves, env.bus)
	env.mutation = NewMutationSystem(cfg, env.registry, env.shockwaves, env.bus)
	env.boss = NewBossSystem(cfg, env.registry, env.steering, env.shockwaves, env.bus)
	return env
}

// countKind returns how many recorded events have the given kind.
func (env *testEnv) countKind(kind telemetry.EventKind) int {
	n := 0
	for _, e := range env.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// bossCount counts worms flagged as boss across every colony.
func (env *testEnv) bossCount() int {
	n := 0
	for _, c := range env.registry.Colonies() {
		for _, e := range c.Worms {
			if env.registry.Worm(e).IsBoss {
				n++
			}
		}
	}
	return n
}
