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
	World      WorldConfig      `yaml:"world"`
	Generation GenerationConfig `yaml:"generation"`
	Population PopulationConfig `yaml:"population"`
	Movement   MovementConfig   `yaml:"movement"`
	Combat     CombatConfig     `yaml:"combat"`
	Respawn    RespawnConfig    `yaml:"respawn"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the playable area dimensions in grid cells.
// The occupancy grid pads these on every side with permanent wall cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GenerationConfig holds cave generation parameters.
type GenerationConfig struct {
	WallSeedProbability float64 `yaml:"wall_seed_probability"` // initial wall density before smoothing
	SmoothingRounds     int     `yaml:"smoothing_rounds"`
	RowsPerWorkUnit     int     `yaml:"rows_per_work_unit"` // rows per resumable work unit
}

// PopulationConfig holds fixed per-kind population sizes.
// Slots are assigned once at process start; kinds never change.
type PopulationConfig struct {
	PerKind       int `yaml:"per_kind"`
	SlimesPerKind int `yaml:"slimes_per_kind"`
	SpawnSpacing  int `yaml:"spawn_spacing"` // spawn lattice pitch in cells
}

// MovementConfig holds targeting and animation parameters.
type MovementConfig struct {
	ActionSamplingThresholds []int `yaml:"action_sampling_thresholds"` // population cutoffs for 16/8/4 frame sampling
	RetargetScale            int   `yaml:"retarget_scale"`             // p = scale / (victims + own kind)
	LookaheadSteps           int   `yaml:"lookahead_steps"`
	DeathFrames              int   `yaml:"death_frames"`
}

// CombatConfig holds collision resolution tuning constants.
// WallBreakChance and the stun durations come from playtesting; treat them
// as fixed values, not knobs to re-derive.
type CombatConfig struct {
	WallBreakChance float64 `yaml:"wall_break_chance"`
	StunFrames      int     `yaml:"stun_frames"`
	SlimeStunFrames int     `yaml:"slime_stun_frames"`
	HeadingJitter   int     `yaml:"heading_jitter"` // +/- angle steps of 32 after a blocked move
}

// RespawnConfig holds revival trigger parameters.
type RespawnConfig struct {
	VisibilityRadius int `yaml:"visibility_radius"` // pixels around the view center
	SampleStride     int `yaml:"sample_stride"`     // cell stride when probing the special tile block
}

// SchedulerConfig holds the per-tick time budget for background work.
type SchedulerConfig struct {
	TickBudgetMicros int `yaml:"tick_budget_micros"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindowTicks int `yaml:"stats_window_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BattleAgents       int   // per_kind * 3
	TotalAgents        int   // battle agents + slimes
	VisibilityRadiusFP int32 // respawn visibility radius in fixed-point units
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.ComputeDerived()

	return cfg, nil
}

// ComputeDerived calculates values derived from loaded config.
// Tests that mutate fields in place call this again afterwards.
func (c *Config) ComputeDerived() {
	c.Derived.BattleAgents = c.Population.PerKind * 3
	c.Derived.TotalAgents = c.Derived.BattleAgents + c.Population.SlimesPerKind*2
	// 8 fractional bits: pixels -> fixed point
	c.Derived.VisibilityRadiusFP = int32(c.Respawn.VisibilityRadius) << 8
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
