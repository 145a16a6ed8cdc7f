package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
)

// ChainSystem drags every worm's trailing segments after its head.
type ChainSystem struct {
	filter *ecs.Filter1[components.Worm]
	follow float64
}

// NewChainSystem creates a chain system.
func NewChainSystem(w *ecs.World, cfg *config.Config) *ChainSystem {
	return &ChainSystem{
		filter: ecs.NewFilter1[components.Worm](w),
		follow: cfg.Chain.Follow,
	}
}

// Update relaxes every worm's body once.
func (s *ChainSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		worm := query.Get()
		RelaxChain(worm.Segments, s.follow)
	}
}

// RelaxChain moves each trailing segment, head to tail, a fraction follow of
// the way toward the point one rest length behind its leader. This is a
// damped follow-the-leader, not a rigid constraint: lengths converge over
// several ticks and stretch during sharp turns.
func RelaxChain(segs []components.Segment, follow float64) {
	for i := 1; i < len(segs); i++ {
		prev := &segs[i-1]
		cur := &segs[i]

		d := r2.Sub(cur.Pos, prev.Pos)
		back := angleOf(d)
		if r2.Norm(d) < 1e-9 {
			// Coincident: trail straight behind the leader
			back = prev.Heading + math.Pi
		}

		target := r2.Add(prev.Pos, r2.Scale(cur.Length, unit(back)))
		cur.Pos = r2.Add(r2.Scale(follow, target), r2.Scale(1-follow, cur.Pos))
		cur.Heading = normalizeAngle(back + math.Pi)
	}
}
