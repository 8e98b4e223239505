// Package config provides configuration loading and access for the engine
// and the demo scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	LOD       LODConfig       `yaml:"lod"`
	Ripple    RippleConfig    `yaml:"ripple"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds solver coefficients.
type SimConfig struct {
	PressureIters       int     `yaml:"pressure_iters"`       // Jacobi iterations per frame (halved in performance mode)
	Curl                float64 `yaml:"curl"`                 // Vorticity confinement strength
	VelocityDissipation float64 `yaml:"velocity_dissipation"` // Per-second decay of velocity
	DyeDissipation      float64 `yaml:"dye_dissipation"`      // Per-second decay of the base dye buffer
	Viscosity           float64 `yaml:"viscosity"`
}

// LODConfig holds the quality controller's application policy. The tier
// thresholds themselves are fixed in the fluid package; these control how the
// scene acts on decisions.
type LODConfig struct {
	CheckInterval float64 `yaml:"check_interval"` // Seconds between LOD evaluations
	Cooldown      float64 `yaml:"cooldown"`       // Seconds to wait after applying a change
}

// RippleConfig holds ripple injection defaults.
type RippleConfig struct {
	MaxRadius     float64 `yaml:"max_radius"`
	RingWidth     float64 `yaml:"ring_width"`
	Strength      float64 `yaml:"strength"`
	WaveFrequency float64 `yaml:"wave_frequency"`
	WaveAmplitude float64 `yaml:"wave_amplitude"`
	Lifetime      float64 `yaml:"lifetime"`
}

// SceneConfig holds demo scene parameters.
type SceneConfig struct {
	MoteCount        int     `yaml:"mote_count"`        // Drifting dye emitters
	MoteSpeed        float64 `yaml:"mote_speed"`        // Base drift speed in normalized units/sec
	InjectRadius     float64 `yaml:"inject_radius"`     // Splat radius in normalized units
	InjectStrength   float64 `yaml:"inject_strength"`   // Dye amount per injection
	VelocityStrength float64 `yaml:"velocity_strength"` // Wake splat strength in texels/sec
	DyeDissipation   float64 `yaml:"dye_dissipation"`   // Per-layer dissipation for mote layers
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Frames per stats window
	LogInterval float64 `yaml:"log_interval"` // Seconds between stats log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
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
