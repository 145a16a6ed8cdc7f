package game

import (
	"log/slog"

	"github.com/pthm-cable/wormsoup/telemetry"
)

// flushTelemetry closes the stats window when due, writes output and checks
// for bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.time) {
		return
	}

	stats := s.collector.Flush(s.sample())
	perf := s.perf.Stats()

	if s.onStats != nil {
		s.onStats(stats)
	}
	if s.logStats {
		stats.LogStats()
		slog.Info("perf", "perf", perf)
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perf, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := s.output.WriteEvents(s.pending); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	s.pending = s.pending[:0]

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if s.snapshotDir != "" {
			s.saveSnapshot(&bm)
		}
	}
}

// sample reads the world state a closing window records.
func (s *Simulation) sample() telemetry.Sample {
	smp := telemetry.Sample{
		Tick:      s.tick,
		SimTime:   s.time,
		Buyers:    s.econ.Buyers,
		Volume:    s.econ.Volume,
		MarketCap: s.econ.MarketCap,
		Growth:    s.growth,
		Colonies:  s.registry.Len(),
		BossAlive: s.boss.Spawned(),
	}

	n := s.registry.TotalWorms()
	smp.Widths = make([]float64, 0, n)
	smp.Speeds = make([]float64, 0, n)
	smp.Limbs = make([]float64, 0, n)
	for _, c := range s.registry.Colonies() {
		smp.Shockwaves += len(c.Shockwaves)
		for _, e := range c.Worms {
			w := s.registry.Worm(e)
			smp.Widths = append(smp.Widths, w.Width)
			smp.Speeds = append(smp.Speeds, w.Speed)
			smp.Limbs = append(smp.Limbs, float64(len(w.Limbs)))
		}
	}
	return smp
}

// saveSnapshot writes the current world to the snapshot directory.
func (s *Simulation) saveSnapshot(bookmark *telemetry.Bookmark) {
	snap := s.Snapshot()
	snap.Bookmark = bookmark

	path, err := telemetry.SaveSnapshot(snap, s.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", s.tick)
}

// SaveSnapshot writes the current world to the snapshot directory on demand.
// Returns the file path.
func (s *Simulation) SaveSnapshot(dir string) (string, error) {
	if dir == "" {
		dir = s.snapshotDir
	}
	if dir == "" {
		dir = "."
	}
	return telemetry.SaveSnapshot(s.Snapshot(), dir)
}
