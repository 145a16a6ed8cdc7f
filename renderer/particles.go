package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spark is a short-lived glowing particle thrown off by world events.
type Spark struct {
	X, Y    float32
	VX, VY  float32
	Life    float32
	MaxLife float32
	Size    float32
	Hue     float64
}

// Spark motion.
const (
	sparkDrag    = 2.5 // per-second velocity decay
	sparkMinLife = 0.4
	sparkMaxLife = 1.1
)

// Sparks is a bounded pool of event particles. It is viewer state only and
// never feeds back into the simulation.
type Sparks struct {
	items []Spark
	max   int
	rng   *rand.Rand
}

// NewSparks creates a pool holding at most max sparks.
func NewSparks(max int, seed int64) *Sparks {
	return &Sparks{
		items: make([]Spark, 0, max),
		max:   max,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Len returns the number of live sparks.
func (s *Sparks) Len() int {
	return len(s.items)
}

// Burst throws n sparks outward from (x, y). Sparks beyond the pool limit
// are dropped.
func (s *Sparks) Burst(x, y, hue float64, n int, speed float32) {
	for i := 0; i < n && len(s.items) < s.max; i++ {
		a := s.rng.Float64() * 2 * math.Pi
		v := speed * (0.4 + 0.6*s.rng.Float32())
		life := sparkMinLife + (sparkMaxLife-sparkMinLife)*s.rng.Float32()
		s.items = append(s.items, Spark{
			X:       float32(x),
			Y:       float32(y),
			VX:      v * float32(math.Cos(a)),
			VY:      v * float32(math.Sin(a)),
			Life:    life,
			MaxLife: life,
			Size:    1.5 + 2*s.rng.Float32(),
			Hue:     hue + 30*(s.rng.Float64()*2-1),
		})
	}
}

// Update advances sparks and drops expired ones in place.
func (s *Sparks) Update(dt float32) {
	if dt <= 0 {
		return
	}
	damp := float32(math.Exp(float64(-sparkDrag * dt)))
	live := s.items[:0]
	for _, p := range s.items {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= damp
		p.VY *= damp
		live = append(live, p)
	}
	s.items = live
}

// Draw renders all sparks in world coordinates.
func (s *Sparks) Draw() {
	for i := range s.items {
		p := &s.items[i]
		ratio := p.Life / p.MaxLife
		size := p.Size * ratio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircleV(rl.NewVector2(p.X, p.Y), size, WormColor(p.Hue, ratio))
	}
}
