package game

import (
	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// Snapshot returns a deep copy of the observable world. Nothing in the
// result aliases live simulation memory.
func (s *Simulation) Snapshot() *telemetry.WorldSnapshot {
	snap := &telemetry.WorldSnapshot{
		Version:   telemetry.SnapshotVersion,
		Seed:      s.seed,
		Tick:      s.tick,
		Time:      s.time,
		Buyers:    s.econ.Buyers,
		Volume:    s.econ.Volume,
		MarketCap: s.econ.MarketCap,
		Growth:    s.growth,
		NextSplit: s.population.NextSplitThreshold(),
		Selected:  s.selected,
		Colonies:  make([]telemetry.ColonyState, 0, s.registry.Len()),
	}

	for _, c := range s.registry.Colonies() {
		cs := telemetry.ColonyState{
			ID:            c.ID,
			X:             c.Pos.X,
			Y:             c.Pos.Y,
			DNA:           c.DNA,
			Nodes:         append([]components.Node(nil), c.Nodes...),
			Shockwaves:    append([]components.Shockwave(nil), c.Shockwaves...),
			MutationCount: c.MutationCount,
			Worms:         make([]telemetry.WormState, 0, len(c.Worms)),
		}
		for _, e := range c.Worms {
			cs.Worms = append(cs.Worms, wormState(s.registry.Worm(e)))
		}
		snap.Colonies = append(snap.Colonies, cs)
	}

	if e, ok := s.boss.Entity(); ok {
		dash := s.boss.Dash()
		snap.Boss = &telemetry.BossState{
			WormID:    s.registry.Worm(e).ID,
			Phase:     dash.Phase.String(),
			Countdown: dash.Countdown,
			TimeLeft:  dash.TimeLeft,
			Dashes:    dash.Dashes,
		}
		if c := s.registry.ColonyOf(e); c != nil {
			snap.Boss.Colony = c.ID
		}
	}
	return snap
}

func wormState(w *components.Worm) telemetry.WormState {
	ws := telemetry.WormState{
		ID:       w.ID,
		Type:     w.Type,
		Hue:      w.Hue,
		Width:    w.Width,
		Speed:    w.Speed,
		IsBoss:   w.IsBoss,
		Segments: make([]telemetry.SegmentState, len(w.Segments)),
		Limbs:    append([]components.Limb(nil), w.Limbs...),
	}
	for i, seg := range w.Segments {
		ws.Segments[i] = telemetry.SegmentState{X: seg.Pos.X, Y: seg.Pos.Y, Heading: seg.Heading}
	}
	return ws
}
