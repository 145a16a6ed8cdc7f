// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Sim        SimConfig        `yaml:"sim"`
	Economy    EconomyConfig    `yaml:"economy"`
	Colony     ColonyConfig     `yaml:"colony"`
	Population PopulationConfig `yaml:"population"`
	Worm       WormConfig       `yaml:"worm"`
	Steering   SteeringConfig   `yaml:"steering"`
	Chain      ChainConfig      `yaml:"chain"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Boss       BossConfig       `yaml:"boss"`
	Shockwave  ShockwaveConfig  `yaml:"shockwave"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	RenderHz  int `yaml:"render_hz"` // Observation passes per second (state reads)
}

// SimConfig holds tick-level parameters.
type SimConfig struct {
	MaxDT        float64 `yaml:"max_dt"`        // Cap on a single step's dt (tab-resume guard)
	DefaultDT    float64 `yaml:"default_dt"`    // dt used by headless runs
	ReferenceFPS float64 `yaml:"reference_fps"` // Per-frame constants are tuned at this rate
}

// EconomyConfig holds growth score divisors.
// GrowthScore = market_cap/cap_divisor + volume/volume_divisor + buyers/buyer_divisor.
type EconomyConfig struct {
	CapDivisor    float64 `yaml:"cap_divisor"`
	VolumeDivisor float64 `yaml:"volume_divisor"`
	BuyerDivisor  float64 `yaml:"buyer_divisor"`
}

// ColonyConfig holds colony creation and split parameters.
type ColonyConfig struct {
	Max             int     `yaml:"max"`
	SplitThreshold  float64 `yaml:"split_threshold"` // First market cap that splits
	SplitStep       float64 `yaml:"split_step"`      // Threshold increment per split
	SplitMinDist    float64 `yaml:"split_min_dist"`
	SplitMaxDist    float64 `yaml:"split_max_dist"`
	HueSpread       float64 `yaml:"hue_spread"` // +/- degrees from colony 0
	StarterBase     float64 `yaml:"starter_base"`
	StarterPerScore float64 `yaml:"starter_per_score"`
	StarterMin      int     `yaml:"starter_min"`
	StarterMax      int     `yaml:"starter_max"`
	LargeChance     float64 `yaml:"large_chance"`
	InitialWorms    int     `yaml:"initial_worms"`
	MinNodes        int     `yaml:"min_nodes"`
	MaxNodes        int     `yaml:"max_nodes"`
	DriftAccel      float64 `yaml:"drift_accel"`   // Random-walk acceleration scale (units/s^2)
	DriftDamping    float64 `yaml:"drift_damping"` // Per-second velocity decay constant
	DriftTether     float64 `yaml:"drift_tether"`  // Spring constant pulling toward the spawn point
	MaxDriftSpeed   float64 `yaml:"max_drift_speed"`
}

// PopulationConfig holds hatch scheduling parameters.
type PopulationConfig struct {
	TargetBase     float64 `yaml:"target_base"`
	TargetPerScore float64 `yaml:"target_per_score"`
	TargetMin      int     `yaml:"target_min"`
	TargetMax      int     `yaml:"target_max"`
	IntervalBase   float64 `yaml:"interval_base"`
	IntervalSlope  float64 `yaml:"interval_slope"`
	IntervalMin    float64 `yaml:"interval_min"`
	IntervalMax    float64 `yaml:"interval_max"`
}

// WormConfig holds trait ranges for freshly spawned worms.
type WormConfig struct {
	MinWidth       float64 `yaml:"min_width"`
	MaxWidth       float64 `yaml:"max_width"`
	LargeMinWidth  float64 `yaml:"large_min_width"`
	LargeMaxWidth  float64 `yaml:"large_max_width"`
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SpeedCap       float64 `yaml:"speed_cap"`
	MinTurnRate    float64 `yaml:"min_turn_rate"`
	MaxTurnRate    float64 `yaml:"max_turn_rate"`
	MinSegments    int     `yaml:"min_segments"`
	MaxSegments    int     `yaml:"max_segments"`
	LargeSegments  int     `yaml:"large_segments"` // Extra segments for large worms
	SegmentLength  float64 `yaml:"segment_length"`
	HueJitter      float64 `yaml:"hue_jitter"`
	SpawnRadius    float64 `yaml:"spawn_radius"`
	MaxStartLimbs  int     `yaml:"max_start_limbs"`
	MaxLimbs       int     `yaml:"max_limbs"`
	MinLimbLength  float64 `yaml:"min_limb_length"`
	MaxLimbLength  float64 `yaml:"max_limb_length"`
	OrbitBiasRange float64 `yaml:"orbit_bias_range"`
	MinOrbitTight  float64 `yaml:"min_orbit_tight"`
	MaxOrbitTight  float64 `yaml:"max_orbit_tight"`
}

// TypeMix holds blend weights for one worm type.
type TypeMix struct {
	Wander  float64 `yaml:"wander"`
	Center  float64 `yaml:"center"`
	Tangent float64 `yaml:"tangent"`
	Turn    float64 `yaml:"turn"` // Multiplier on the worm's turn rate
}

// SteeringConfig holds heading blend, ring pull and leash parameters.
type SteeringConfig struct {
	SpeedFactor     float64 `yaml:"speed_factor"` // Speed units -> world units per second
	BossSpeedMul    float64 `yaml:"boss_speed_mul"`
	Jitter          float64 `yaml:"jitter"` // Max random heading jitter (radians), scaled by chaos
	Wobble          float64 `yaml:"wobble"` // Sinusoidal wobble amplitude (radians)
	WobbleFreq      float64 `yaml:"wobble_freq"`
	RingBase        float64 `yaml:"ring_base"` // Preferred radius = ring_base*orbit_tight + ring_aura*aura
	RingAura        float64 `yaml:"ring_aura"`
	RingPull        float64 `yaml:"ring_pull"`  // Center weight gained per unit of outward ring error
	RingPush        float64 `yaml:"ring_push"`  // Tangent weight gained per unit of inward ring error
	LeashBase       float64 `yaml:"leash_base"` // Leash = leash_base + leash_aura*aura
	LeashAura       float64 `yaml:"leash_aura"`
	LeashStiffness  float64 `yaml:"leash_stiffness"` // Per-second pull-back rate on overage
	LeashNudge      float64 `yaml:"leash_nudge"`     // Heading blend toward return direction when leashed
	MaxTurnPerFrame float64 `yaml:"max_turn_per_frame"`

	Drifter TypeMix `yaml:"drifter"`
	Orbiter TypeMix `yaml:"orbiter"`
	Hunter  TypeMix `yaml:"hunter"`
}

// ChainConfig holds segment follow parameters.
type ChainConfig struct {
	Follow float64 `yaml:"follow"` // Fraction moved toward the ideal point per tick
}

// MutationConfig holds mutation probabilities and magnitudes.
type MutationConfig struct {
	RareChance      float64 `yaml:"rare_chance"`
	ColorWeight     float64 `yaml:"color_weight"`
	SpeedWeight     float64 `yaml:"speed_weight"`
	WidthWeight     float64 `yaml:"width_weight"`
	LimbWeight      float64 `yaml:"limb_weight"`
	ShockwaveChance float64 `yaml:"shockwave_chance"`
	MinWidth        float64 `yaml:"min_width"`
	MaxWidth        float64 `yaml:"max_width"`
	RareMaxWidth    float64 `yaml:"rare_max_width"`
	FireChance      float64 `yaml:"fire_chance"`
	IntervalBase    float64 `yaml:"interval_base"`
	IntervalSlope   float64 `yaml:"interval_slope"`
	IntervalMin     float64 `yaml:"interval_min"`
	IntervalMax     float64 `yaml:"interval_max"`
}

// BossConfig holds elite worm and dash parameters.
type BossConfig struct {
	CapThreshold  float64 `yaml:"cap_threshold"`
	Hue           float64 `yaml:"hue"`
	Width         float64 `yaml:"width"`
	Speed         float64 `yaml:"speed"`
	TurnRate      float64 `yaml:"turn_rate"`
	Segments      int     `yaml:"segments"`
	SegmentLen    float64 `yaml:"segment_length"`
	Limbs         int     `yaml:"limbs"`
	MinCooldown   float64 `yaml:"min_cooldown"`
	MaxCooldown   float64 `yaml:"max_cooldown"`
	MinImpulse    float64 `yaml:"min_impulse"`
	MaxImpulse    float64 `yaml:"max_impulse"`
	MinDuration   float64 `yaml:"min_duration"`
	MaxDuration   float64 `yaml:"max_duration"`
	HeadingSpread float64 `yaml:"heading_spread"` // Random offset around the tangent (radians)
	FlipChance    float64 `yaml:"flip_chance"`
	Decay         float64 `yaml:"decay"`      // Per-second exponential impulse decay
	LeashDamp     float64 `yaml:"leash_damp"` // Extra impulse multiplier when leashed mid-dash
	DashTurn      float64 `yaml:"dash_turn"`  // Per-second heading convergence toward dash heading
	EndStrength   float64 `yaml:"end_strength"`
}

// ShockwaveConfig holds ring effect parameters.
type ShockwaveConfig struct {
	BaseGrowth     float64   `yaml:"base_growth"`
	GrowthPerStr   float64   `yaml:"growth_per_strength"`
	StartAlpha     float64   `yaml:"start_alpha"`
	BaseWidth      float64   `yaml:"base_width"`
	Decay          float64   `yaml:"decay"`     // Alpha multiplier per reference frame
	MinAlpha       float64   `yaml:"min_alpha"` // Evicted below this
	GiantStrengths []float64 `yaml:"giant_strengths"`
	GiantStagger   float64   `yaml:"giant_stagger"` // Seconds between giant layers
	MutationStr    float64   `yaml:"mutation_strength"`
	SplitStr       float64   `yaml:"split_strength"`
}

// TelemetryConfig holds stats and event log parameters.
type TelemetryConfig struct {
	StatsWindow  float64 `yaml:"stats_window"`
	EventLogSize int     `yaml:"event_log_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MixTotal float64 // Sum of mutation branch weights
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// validate rejects settings the simulation cannot run with.
func (c *Config) validate() error {
	if c.Colony.Max < 1 {
		return fmt.Errorf("colony.max must be >= 1, got %d", c.Colony.Max)
	}
	if c.Colony.MinNodes < 1 || c.Colony.MaxNodes < c.Colony.MinNodes {
		return fmt.Errorf("colony node range [%d, %d] invalid", c.Colony.MinNodes, c.Colony.MaxNodes)
	}
	if c.Worm.MinSegments < 2 || c.Worm.MaxSegments < c.Worm.MinSegments {
		return fmt.Errorf("worm segment range [%d, %d] invalid", c.Worm.MinSegments, c.Worm.MaxSegments)
	}
	if c.Boss.Segments < 2 {
		return fmt.Errorf("boss.segments must be >= 2, got %d", c.Boss.Segments)
	}
	if c.Sim.MaxDT <= 0 || c.Sim.ReferenceFPS <= 0 {
		return fmt.Errorf("sim.max_dt and sim.reference_fps must be positive")
	}
	if c.Shockwave.Decay <= 0 || c.Shockwave.Decay >= 1 {
		return fmt.Errorf("shockwave.decay must be in (0, 1), got %v", c.Shockwave.Decay)
	}
	if c.Economy.CapDivisor <= 0 || c.Economy.VolumeDivisor <= 0 || c.Economy.BuyerDivisor <= 0 {
		return fmt.Errorf("economy divisors must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	m := c.Mutation
	c.Derived.MixTotal = m.ColorWeight + m.SpeedWeight + m.WidthWeight + m.LimbWeight
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
