package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of the simulation step.
type Phase uint8

const (
	PhaseEconomy Phase = iota // drift, growth, splits, boss emergence
	PhasePopulation
	PhaseSteering
	PhaseBoss
	PhaseChain
	PhaseMutation
	PhaseShockwave
	PhaseTelemetry
)

// NumPhases is the number of step phases.
const NumPhases = 8

var phaseNames = [NumPhases]string{
	"economy", "population", "steering", "boss",
	"chain", "mutation", "shockwave", "telemetry",
}

func (p Phase) String() string {
	if int(p) >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	Tick   time.Duration
	Phases [NumPhases]time.Duration
}

// PerfCollector tracks step timing over a rolling window of ticks.
type PerfCollector struct {
	samples []PerfSample
	next    int
	count   int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]PerfSample, windowSize), now: time.Now}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = p.now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.current.Tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// RecordFrame records frame timing in the viewer.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	// Share of the average tick spent in each phase, in percent
	PhasePct [NumPhases]float64

	TicksPerSecond float64
	FPS            float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p == nil {
		return s
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [NumPhases]time.Duration
	for i := 0; i < p.count; i++ {
		sample := p.samples[i]
		total += sample.Tick
		if i == 0 || sample.Tick < s.MinTick {
			s.MinTick = sample.Tick
		}
		if sample.Tick > s.MaxTick {
			s.MaxTick = sample.Tick
		}
		for ph, d := range sample.Phases {
			phaseSum[ph] += d
		}
	}

	s.AvgTick = total / time.Duration(p.count)
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
		for ph, sum := range phaseSum {
			avg := sum / time.Duration(p.count)
			s.PhasePct[ph] = float64(avg) / float64(s.AvgTick) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	EconomyPct    float64 `csv:"economy_pct"`
	PopulationPct float64 `csv:"population_pct"`
	SteeringPct   float64 `csv:"steering_pct"`
	BossPct       float64 `csv:"boss_pct"`
	ChainPct      float64 `csv:"chain_pct"`
	MutationPct   float64 `csv:"mutation_pct"`
	ShockwavePct  float64 `csv:"shockwave_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTick.Microseconds(),
		MinTickUS:     s.MinTick.Microseconds(),
		MaxTickUS:     s.MaxTick.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		EconomyPct:    s.PhasePct[PhaseEconomy],
		PopulationPct: s.PhasePct[PhasePopulation],
		SteeringPct:   s.PhasePct[PhaseSteering],
		BossPct:       s.PhasePct[PhaseBoss],
		ChainPct:      s.PhasePct[PhaseChain],
		MutationPct:   s.PhasePct[PhaseMutation],
		ShockwavePct:  s.PhasePct[PhaseShockwave],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
