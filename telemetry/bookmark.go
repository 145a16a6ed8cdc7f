package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkMutationBurst   BookmarkType = "mutation_burst"
	BookmarkPopulationSurge BookmarkType = "population_surge"
	BookmarkColonyBoom      BookmarkType = "colony_boom"
	BookmarkBossEmerged     BookmarkType = "boss_emerged"
	BookmarkStableSwarm     BookmarkType = "stable_swarm"
)

// Bookmark marks a window worth a closer look.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable moments.
type BookmarkDetector struct {
	history []WindowStats
	next    int
	full    bool

	bossSeen     bool
	stableStreak int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{history: make([]WindowStats, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkMutationBurst,
		bd.checkPopulationSurge,
		bd.checkColonyBoom,
		bd.checkBoss,
		bd.checkStableSwarm,
	} {
		if b := check(stats); b != nil {
			out = append(out, *b)
		}
	}

	bd.history[bd.next] = stats
	bd.next = (bd.next + 1) % len(bd.history)
	if bd.next == 0 {
		bd.full = true
	}
	return out
}

// recent returns the retained windows, oldest first.
func (bd *BookmarkDetector) recent() []WindowStats {
	if !bd.full {
		return bd.history[:bd.next]
	}
	out := make([]WindowStats, 0, len(bd.history))
	out = append(out, bd.history[bd.next:]...)
	return append(out, bd.history[:bd.next]...)
}

func (bd *BookmarkDetector) checkMutationBurst(stats WindowStats) *Bookmark {
	history := bd.recent()
	if len(history) < 3 {
		return nil
	}
	total := 0
	for _, h := range history {
		total += h.Mutations
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || stats.Mutations < 5 || float64(stats.Mutations) <= avg*2 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkMutationBurst,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d mutations is %.1fx the average (%.1f)", stats.Mutations, float64(stats.Mutations)/avg, avg),
	}
}

func (bd *BookmarkDetector) checkPopulationSurge(stats WindowStats) *Bookmark {
	history := bd.recent()
	if len(history) == 0 {
		return nil
	}
	prev := history[len(history)-1].Worms
	if prev == 0 || stats.Worms < prev+10 || float64(stats.Worms) < float64(prev)*1.5 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPopulationSurge,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Worms surged from %d to %d", prev, stats.Worms),
	}
}

func (bd *BookmarkDetector) checkColonyBoom(stats WindowStats) *Bookmark {
	if stats.Splits < 3 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkColonyBoom,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d colonies split off in one window (%d total)", stats.Splits, stats.Colonies),
	}
}

func (bd *BookmarkDetector) checkBoss(stats WindowStats) *Bookmark {
	if bd.bossSeen || !stats.BossAlive {
		return nil
	}
	bd.bossSeen = true
	return &Bookmark{
		Type:        BookmarkBossEmerged,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Boss emerged at market cap %.0f", stats.MarketCap),
	}
}

func (bd *BookmarkDetector) checkStableSwarm(stats WindowStats) *Bookmark {
	history := bd.recent()
	if stats.Worms < 10 || len(history) == 0 {
		bd.stableStreak = 0
		return nil
	}

	prev := history[len(history)-1]
	change := float64(stats.Worms-prev.Worms) / float64(stats.Worms)
	if change < 0.05 && change > -0.05 && stats.Splits == 0 {
		bd.stableStreak++
	} else {
		bd.stableStreak = 0
	}

	// Trigger once per streak
	if bd.stableStreak != 5 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStableSwarm,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Swarm held at %d worms in %d colonies over 5 windows", stats.Worms, stats.Colonies),
	}
}
