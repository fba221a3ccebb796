// Package config loads warpcheck settings and the instruction catalogue from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/engine"
	"github.com/lixenwraith/warpcheck/limiter"
	"github.com/lixenwraith/warpcheck/logging"
	"github.com/lixenwraith/warpcheck/parameter"
)

var ErrInvalid = errors.New("invalid config")

// Config is the file layout
type Config struct {
	Engine       EngineConfig      `yaml:"engine"`
	Log          LogConfig         `yaml:"log"`
	Audio        AudioConfig       `yaml:"audio"`
	Instructions map[string]string `yaml:"instructions"` // Keyed by challenge type name
}

// EngineConfig overrides engine defaults
type EngineConfig struct {
	Seed       uint64        `yaml:"seed"`
	LowPower   bool          `yaml:"low_power"`
	PixelRatio float64       `yaml:"pixel_ratio"`
	Cooldown   time.Duration `yaml:"cooldown"`
	Hold       time.Duration `yaml:"hold"`
	TokenPath  string        `yaml:"token_path"` // Empty keeps the lockout in memory
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// AudioConfig toggles verdict cues
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration
func Default() *Config {
	instr := make(map[string]string, len(defaultInstructions))
	for k, v := range defaultInstructions {
		instr[k] = v
	}
	return &Config{
		Engine: EngineConfig{
			PixelRatio: parameter.DefaultPixelRatio,
			Cooldown:   parameter.FailureCooldown,
			Hold:       parameter.SuccessHold,
		},
		Log:          LogConfig{Level: "info", Format: "text"},
		Audio:        AudioConfig{Enabled: true},
		Instructions: instr,
	}
}

// Load reads path over the defaults, an empty path returns the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
// Instruction entries merge per key, omitted types keep their default text
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	defaults := cfg.Instructions
	cfg.Instructions = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	for k, v := range cfg.Instructions {
		defaults[k] = v
	}
	cfg.Instructions = defaults

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and catalogue keys
func (c *Config) Validate() error {
	if c.Engine.PixelRatio <= 0 {
		return fmt.Errorf("%w: pixel_ratio must be positive, got %v", ErrInvalid, c.Engine.PixelRatio)
	}
	if c.Engine.Cooldown < 0 || c.Engine.Hold < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	for name, text := range c.Instructions {
		if _, err := challenge.ParseType(name); err != nil {
			return fmt.Errorf("%w: instructions: %w", ErrInvalid, err)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: instructions: empty text for %s", ErrInvalid, name)
		}
	}
	return nil
}

// Instruction returns the catalogue text for t
func (c *Config) Instruction(t challenge.Type) string {
	if s, ok := c.Instructions[t.String()]; ok {
		return s
	}
	return t.String()
}

// Options converts the engine section into engine options
func (c *Config) Options() []engine.Option {
	opts := []engine.Option{
		engine.WithSeed(c.Engine.Seed),
		engine.WithLowPower(c.Engine.LowPower),
		engine.WithPixelRatio(c.Engine.PixelRatio),
		engine.WithTimings(c.Engine.Cooldown, c.Engine.Hold),
	}
	if c.Engine.TokenPath != "" {
		opts = append(opts, engine.WithStore(limiter.NewFileStore(c.Engine.TokenPath)))
	}
	return opts
}
