// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// A Config is immutable once a run starts; edits made through the options
// panel take effect only through a fresh simulation start.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Sim        SimConfig        `yaml:"sim"`
	Movement   MovementConfig   `yaml:"movement"`
	Energy     EnergyConfig     `yaml:"energy"`
	Traits     TraitsConfig     `yaml:"traits"`
	Population PopulationConfig `yaml:"population"`
	Food       FoodConfig       `yaml:"food"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions for headless runs.
// In graphical mode the window supplies the bounds each tick instead.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// SimConfig holds timing parameters.
type SimConfig struct {
	Speed       float64 `yaml:"speed"`        // Simulated seconds per wall-clock second
	DayLength   float64 `yaml:"day_length"`   // Daylight duration in simulated seconds
	NightLength float64 `yaml:"night_length"` // Night duration in simulated seconds
	DT          float64 `yaml:"dt"`           // Fixed frame delta for headless runs
}

// MovementConfig holds agent locomotion parameters.
type MovementConfig struct {
	Speed    float64 `yaml:"speed"`     // Base movement speed in units per simulated second
	TurnRate float64 `yaml:"turn_rate"` // Free-roam heading jitter envelope (radians per second)
}

// EnergyConfig holds the energy economy parameters.
type EnergyConfig struct {
	Base            float64 `yaml:"base"`               // Energy granted at spawn and at dawn renewal
	CostPerDistance float64 `yaml:"cost_per_distance"`  // Drain per unit moved, scaled by speed trait (0 = derive)
	SenseCostPerSec float64 `yaml:"sense_cost_per_sec"` // Upkeep while a radar target is tracked
}

// TraitsConfig holds heritable trait seeds and mutation parameters.
type TraitsConfig struct {
	Speed             float64 `yaml:"speed"`              // Founder speed trait
	Sense             float64 `yaml:"sense"`              // Founder sensing radius in world units
	MutationIntensity float64 `yaml:"mutation_intensity"` // Relative perturbation envelope at reproduction
	Min               float64 `yaml:"min"`                // Trait floor; mutation never produces less
}

// PopulationConfig holds population seeding parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// FoodConfig holds food spawning parameters.
type FoodConfig struct {
	Batch         int              `yaml:"batch"`          // Items spawned at start and at every dawn
	ContactRadius float64          `yaml:"contact_radius"` // Consumption distance threshold
	Clustering    ClusteringConfig `yaml:"clustering"`
}

// ClusteringConfig biases food placement into noise-defined patches.
type ClusteringConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Scale     float64 `yaml:"scale"`     // Noise frequency (smaller = larger patches)
	Threshold float64 `yaml:"threshold"` // Noise value a location must exceed
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CostPerDistance32 float32 // Effective energy cost per distance unit
	DT32              float32 // Sim.DT as float32
	WorldW32          float32 // Effective world width as float32
	WorldH32          float32 // Effective world height as float32
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The returned config is
// validated; constraint violations are fatal, never clamped.
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

	if err := cfg.Prepare(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Prepare validates the config and computes the derived values. Call it
// after mutating a config outside Load, before handing it to a simulation.
func (c *Config) Prepare() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate checks the documented constraints. All parameters must be
// positive; a violation is a fatal configuration error surfaced before
// any tick runs.
func (c *Config) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be positive, got %v", name, v))
		}
	}

	check("sim.speed", c.Sim.Speed)
	check("sim.day_length", c.Sim.DayLength)
	check("sim.night_length", c.Sim.NightLength)
	check("sim.dt", c.Sim.DT)
	check("movement.speed", c.Movement.Speed)
	check("movement.turn_rate", c.Movement.TurnRate)
	check("energy.base", c.Energy.Base)
	check("energy.sense_cost_per_sec", c.Energy.SenseCostPerSec)
	check("traits.speed", c.Traits.Speed)
	check("traits.sense", c.Traits.Sense)
	check("traits.min", c.Traits.Min)
	check("food.contact_radius", c.Food.ContactRadius)
	check("population.initial", float64(c.Population.Initial))
	check("food.batch", float64(c.Food.Batch))

	if c.Energy.CostPerDistance < 0 {
		errs = append(errs, fmt.Errorf("config: energy.cost_per_distance must not be negative, got %v", c.Energy.CostPerDistance))
	}
	if c.Traits.MutationIntensity < 0 {
		errs = append(errs, fmt.Errorf("config: traits.mutation_intensity must not be negative, got %v", c.Traits.MutationIntensity))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// The default distance cost is calibrated so that an agent moving at the
	// founder speed for one full day+night cycle spends exactly the base energy.
	cost := c.Energy.CostPerDistance
	if cost == 0 {
		cost = 1 / (c.Sim.DayLength + c.Sim.NightLength) / c.Movement.Speed
	}
	c.Derived.CostPerDistance32 = float32(cost)
	c.Derived.DT32 = float32(c.Sim.DT)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
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
