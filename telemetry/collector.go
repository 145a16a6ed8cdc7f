package telemetry

// Sample is the world state the collector reads when a window closes.
type Sample struct {
	Tick    int64
	SimTime float64

	Buyers    int
	Volume    float64
	MarketCap float64
	Growth    float64

	Colonies   int
	BossAlive  bool
	Shockwaves int

	// One entry per worm
	Widths []float64
	Speeds []float64
	Limbs  []float64
}

// Collector counts bus events within time windows and produces WindowStats.
type Collector struct {
	windowSec   float64
	windowStart float64
	startTick   int64

	hatches       int
	splits        int
	mutations     int
	rareMutations int
	dashes        int
}

// NewCollector creates a collector that closes a window every windowSec
// simulation seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 10
	}
	return &Collector{windowSec: windowSec}
}

// Attach subscribes the collector to a bus.
func (c *Collector) Attach(bus *Bus) {
	bus.Subscribe(c.Record)
}

// Record counts one event.
func (c *Collector) Record(e Event) {
	switch e.Kind {
	case KindHatch:
		c.hatches++
	case KindEvent:
		// Splits are the only world events scoped to a non-founding colony
		if e.Colony > 0 {
			c.splits++
		}
	case KindMutation:
		c.mutations++
		if e.Rare {
			c.rareMutations++
		}
	case KindDash:
		c.dashes++
	}
}

// ShouldFlush reports whether the current window has run its full length.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStart >= c.windowSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(s Sample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.startTick,
		WindowEndTick:   s.Tick,
		SimTimeSec:      s.SimTime,

		Buyers:    s.Buyers,
		Volume:    s.Volume,
		MarketCap: s.MarketCap,
		Growth:    s.Growth,

		Colonies:   s.Colonies,
		Worms:      len(s.Widths),
		BossAlive:  s.BossAlive,
		Shockwaves: s.Shockwaves,

		Hatches:       c.hatches,
		Splits:        c.splits,
		Mutations:     c.mutations,
		RareMutations: c.rareMutations,
		Dashes:        c.dashes,

		Width: Summarize(s.Widths),
		Speed: Summarize(s.Speeds),
		Limbs: Summarize(s.Limbs),
	}

	c.windowStart = s.SimTime
	c.startTick = s.Tick
	c.hatches = 0
	c.splits = 0
	c.mutations = 0
	c.rareMutations = 0
	c.dashes = 0

	return stats
}

// WindowSec returns the window length in simulation seconds.
func (c *Collector) WindowSec() float64 {
	return c.windowSec
}
