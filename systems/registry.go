package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
)

// ColonyRegistry owns the ECS world, the ordered colony list and each
// colony's ordered worm list. Every other system mutates through it.
type ColonyRegistry struct {
	cfg   *config.Config
	world *ecs.World

	wormMap   *ecs.Map2[components.Worm, components.Membership]
	bossMap   *ecs.Map3[components.Worm, components.Membership, components.BossDash]
	wormOnly  *ecs.Map[components.Worm]
	dashMap   *ecs.Map[components.BossDash]
	memberMap *ecs.Map[components.Membership]

	colonies   []*components.Colony
	nextWormID uint32
}

// NewColonyRegistry creates a registry with a single founding colony at the
// origin seeded with colony.initial_worms worms.
func NewColonyRegistry(w *ecs.World, cfg *config.Config, rng *rand.Rand) *ColonyRegistry {
	r := &ColonyRegistry{
		cfg:        cfg,
		world:      w,
		wormMap:    ecs.NewMap2[components.Worm, components.Membership](w),
		bossMap:    ecs.NewMap3[components.Worm, components.Membership, components.BossDash](w),
		wormOnly:   ecs.NewMap[components.Worm](w),
		dashMap:    ecs.NewMap[components.BossDash](w),
		memberMap:  ecs.NewMap[components.Membership](w),
		nextWormID: 1,
	}

	founder := r.AddColony(r2.Vec{}, rng.Float64()*360, rng)
	for i := 0; i < cfg.Colony.InitialWorms; i++ {
		r.SpawnWorm(founder.ID, false, rng)
	}
	return r
}

// World returns the underlying ECS world.
func (r *ColonyRegistry) World() *ecs.World {
	return r.world
}

// Colonies returns the colony list in creation order.
func (r *ColonyRegistry) Colonies() []*components.Colony {
	return r.colonies
}

// Len returns the number of colonies.
func (r *ColonyRegistry) Len() int {
	return len(r.colonies)
}

// Full reports whether the colony cap is reached.
func (r *ColonyRegistry) Full() bool {
	return len(r.colonies) >= r.cfg.Colony.Max
}

// Colony returns colony i, or nil when out of range.
func (r *ColonyRegistry) Colony(i int) *components.Colony {
	if i < 0 || i >= len(r.colonies) {
		return nil
	}
	return r.colonies[i]
}

// TotalWorms returns the number of worms across all colonies, boss included.
func (r *ColonyRegistry) TotalWorms() int {
	n := 0
	for _, c := range r.colonies {
		n += len(c.Worms)
	}
	return n
}

// Worm returns the worm component of e. The pointer is valid until the next
// entity is created.
func (r *ColonyRegistry) Worm(e ecs.Entity) *components.Worm {
	return r.wormOnly.Get(e)
}

// FindWorm returns the live entity of the worm with the given ID.
func (r *ColonyRegistry) FindWorm(id uint32) (ecs.Entity, bool) {
	for _, c := range r.colonies {
		for _, e := range c.Worms {
			if r.world.Alive(e) && r.wormOnly.Get(e).ID == id {
				return e, true
			}
		}
	}
	return ecs.Entity{}, false
}

// ColonyOf returns the colony owning worm e, or nil.
func (r *ColonyRegistry) ColonyOf(e ecs.Entity) *components.Colony {
	if !r.world.Alive(e) || !r.memberMap.Has(e) {
		return nil
	}
	return r.Colony(r.memberMap.Get(e).Colony)
}

// AddColony appends a colony with fresh random DNA. It does not enforce the
// colony cap; callers check Full first.
func (r *ColonyRegistry) AddColony(pos r2.Vec, hue float64, rng *rand.Rand) *components.Colony {
	c := &components.Colony{
		ID:   len(r.colonies),
		Pos:  pos,
		Home: pos,
		DNA: components.DNA{
			Hue:         wrapHue(hue),
			Chaos:       randRange(rng, components.MinChaos, components.MaxChaos),
			Drift:       randRange(rng, components.MinDrift, components.MaxDrift),
			Aura:        randRange(rng, components.MinAura, components.MaxAura),
			Temperament: components.Temperament(rng.Intn(components.NumTemperaments)),
			Biome:       components.Biome(rng.Intn(components.NumBiomes)),
			Style:       components.Style(rng.Intn(components.NumStyles)),
		},
	}

	n := randIntRange(rng, r.cfg.Colony.MinNodes, r.cfg.Colony.MaxNodes)
	c.Nodes = make([]components.Node, n)
	for i := range c.Nodes {
		c.Nodes[i] = components.Node{
			Angle:  float64(i)/float64(n)*2*math.Pi + randRange(rng, -0.3, 0.3),
			Radius: randRange(rng, 18, 42) * c.DNA.Aura,
			Size:   randRange(rng, 2, 5),
			Phase:  rng.Float64() * 2 * math.Pi,
		}
	}

	r.colonies = append(r.colonies, c)
	return c
}

// SpawnWorm creates a random worm in colony ci and appends it to the colony's
// list. Large worms are wider and longer. Reports false when ci is out of
// range.
func (r *ColonyRegistry) SpawnWorm(ci int, large bool, rng *rand.Rand) (ecs.Entity, bool) {
	c := r.Colony(ci)
	if c == nil {
		var none ecs.Entity
		return none, false
	}
	wc := r.cfg.Worm

	typ := components.WormType(rng.Intn(components.NumWormTypes))
	width := randRange(rng, wc.MinWidth, wc.MaxWidth)
	nseg := randIntRange(rng, wc.MinSegments, wc.MaxSegments)
	segLen := wc.SegmentLength * randRange(rng, 0.85, 1.15)
	if large {
		width = randRange(rng, wc.LargeMinWidth, wc.LargeMaxWidth)
		nseg += wc.LargeSegments
		segLen *= 1.25
	}

	speed := randRange(rng, wc.MinSpeed, wc.MaxSpeed)
	switch typ {
	case components.Drifter:
		speed *= 0.85
	case components.Hunter:
		speed *= 1.15
	}

	head := r2.Add(c.Pos, r2.Scale(rng.Float64()*wc.SpawnRadius, unit(rng.Float64()*2*math.Pi)))
	worm := components.Worm{
		ID:         r.nextWormID,
		Type:       typ,
		Hue:        wrapHue(c.DNA.Hue + randRange(rng, -wc.HueJitter, wc.HueJitter)),
		Width:      width,
		Speed:      math.Min(speed, wc.SpeedCap),
		TurnRate:   randRange(rng, wc.MinTurnRate, wc.MaxTurnRate),
		Phase:      rng.Float64() * 2 * math.Pi,
		Segments:   layoutSegments(head, rng.Float64()*2*math.Pi, nseg, segLen),
		OrbitDir:   randSign(rng),
		OrbitBias:  randRange(rng, -wc.OrbitBiasRange, wc.OrbitBiasRange),
		OrbitTight: randRange(rng, wc.MinOrbitTight, wc.MaxOrbitTight),
	}
	for i := rng.Intn(wc.MaxStartLimbs + 1); i > 0; i-- {
		r.AddLimb(&worm, rng)
	}

	return r.insert(c, worm), true
}

// SpawnBoss creates the elite worm in colony ci with its dash state attached.
func (r *ColonyRegistry) SpawnBoss(ci int, dash components.BossDash, rng *rand.Rand) (ecs.Entity, bool) {
	c := r.Colony(ci)
	if c == nil {
		var none ecs.Entity
		return none, false
	}
	bc := r.cfg.Boss

	head := r2.Add(c.Pos, r2.Scale(r.cfg.Worm.SpawnRadius, unit(rng.Float64()*2*math.Pi)))
	worm := components.Worm{
		ID:         r.nextWormID,
		Type:       components.Hunter,
		Hue:        wrapHue(bc.Hue),
		Width:      bc.Width,
		Speed:      bc.Speed,
		TurnRate:   bc.TurnRate,
		Phase:      rng.Float64() * 2 * math.Pi,
		Segments:   layoutSegments(head, rng.Float64()*2*math.Pi, bc.Segments, bc.SegmentLen),
		IsBoss:     true,
		OrbitDir:   randSign(rng),
		OrbitTight: 1,
	}
	for i := 0; i < bc.Limbs; i++ {
		r.AddLimb(&worm, rng)
	}
	r.nextWormID++

	e := r.bossMap.NewEntity(&worm, &components.Membership{Colony: c.ID}, &dash)
	c.Worms = append(c.Worms, e)
	return e, true
}

// Dash returns the dash state of e, or nil when e is not the boss.
func (r *ColonyRegistry) Dash(e ecs.Entity) *components.BossDash {
	if !r.world.Alive(e) || !r.dashMap.Has(e) {
		return nil
	}
	return r.dashMap.Get(e)
}

// AddLimb attaches a random limb unless the worm is at the limb cap.
// Reports whether a limb was added.
func (r *ColonyRegistry) AddLimb(w *components.Worm, rng *rand.Rand) bool {
	wc := r.cfg.Worm
	if len(w.Limbs) >= wc.MaxLimbs || len(w.Segments) < 2 {
		return false
	}
	w.Limbs = append(w.Limbs, components.Limb{
		Attach:     randIntRange(rng, 1, len(w.Segments)-1),
		Length:     randRange(rng, wc.MinLimbLength, wc.MaxLimbLength) * (w.Width / wc.MaxWidth),
		Angle:      randSign(rng) * randRange(rng, 0.6, 1.3),
		WobbleRate: randRange(rng, 2, 5),
	})
	return true
}

// Drift advances every colony's damped random walk, softly tethered to its
// spawn point.
func (r *ColonyRegistry) Drift(dt float64, rng *rand.Rand) {
	cc := r.cfg.Colony
	damp := math.Exp(-cc.DriftDamping * dt)
	for _, c := range r.colonies {
		kick := r2.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
		c.Vel = r2.Add(c.Vel, r2.Scale(cc.DriftAccel*c.DNA.Drift*dt, kick))
		c.Vel = r2.Add(c.Vel, r2.Scale(-cc.DriftTether*dt, r2.Sub(c.Pos, c.Home)))
		c.Vel = r2.Scale(damp, c.Vel)

		maxSpeed := cc.MaxDriftSpeed * c.DNA.Drift
		if s := r2.Norm(c.Vel); s > maxSpeed {
			c.Vel = r2.Scale(maxSpeed/s, c.Vel)
		}
		c.Pos = r2.Add(c.Pos, r2.Scale(dt, c.Vel))
	}
}

// insert stores a worm and appends it to its colony.
func (r *ColonyRegistry) insert(c *components.Colony, worm components.Worm) ecs.Entity {
	r.nextWormID++
	e := r.wormMap.NewEntity(&worm, &components.Membership{Colony: c.ID})
	c.Worms = append(c.Worms, e)
	return e
}

// layoutSegments lays a straight chain trailing behind the head.
func layoutSegments(head r2.Vec, heading float64, n int, segLen float64) []components.Segment {
	if n < 2 {
		n = 2
	}
	back := r2.Scale(-segLen, unit(heading))
	segs := make([]components.Segment, n)
	for i := range segs {
		segs[i] = components.Segment{
			Pos:     r2.Add(head, r2.Scale(float64(i), back)),
			Heading: heading,
			Length:  segLen,
		}
	}
	return segs
}
