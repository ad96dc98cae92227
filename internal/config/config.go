// Package config holds the outcomematch configuration: how explanations are
// printed and how the library logs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvConfigPath names the config file read by Current.
const EnvConfigPath = "OUTCOMEMATCH_CONFIG"

// Config holds all outcomematch configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls explanation rendering.
type OutputConfig struct {
	Color    bool `yaml:"color"`     // colour expected/received with ANSI escapes
	Indent   int  `yaml:"indent"`    // spaces per nesting level in diffs
	MaxDepth int  `yaml:"max_depth"` // deeper composites print as [Object] / [Array]
}

// LoggingConfig is handed to logging.Initialize, which owns the category
// gating.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // console, json
	DebugMode  bool            `yaml:"debug_mode"` // off means a no-op logger
	Categories map[string]bool `yaml:"categories"` // missing categories are enabled
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Color:    false,
			Indent:   2,
			MaxDepth: 10,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OUTCOMEMATCH_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Output.Color = b
		}
	}
	// https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		c.Output.Color = false
	}
	if v := os.Getenv("OUTCOMEMATCH_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Output.MaxDepth = n
		}
	}
	if v := os.Getenv("OUTCOMEMATCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("OUTCOMEMATCH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
}

// ValidLevels are the accepted logging.level values.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats are the accepted logging.format values.
var ValidFormats = []string{"console", "json"}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Output.Indent < 1 || c.Output.Indent > 8 {
		return fmt.Errorf("%w: output.indent must be between 1 and 8, got %d", ErrInvalidConfig, c.Output.Indent)
	}
	if c.Output.MaxDepth < 1 {
		return fmt.Errorf("%w: output.max_depth must be positive, got %d", ErrInvalidConfig, c.Output.MaxDepth)
	}
	if c.Logging.Level != "" && !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("%w: invalid logging level: %s (valid: %v)", ErrInvalidConfig, c.Logging.Level, ValidLevels)
	}
	if c.Logging.Format != "" && !contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("%w: invalid logging format: %s (valid: %v)", ErrInvalidConfig, c.Logging.Format, ValidFormats)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var (
	currentOnce sync.Once
	current     *Config
)

// Current returns the process-wide configuration, loaded once from the file
// named by OUTCOMEMATCH_CONFIG (or the defaults). A broken file falls back to
// the defaults with env overrides applied.
func Current() *Config {
	currentOnce.Do(func() {
		cfg, err := Load(os.Getenv(EnvConfigPath))
		if err != nil {
			cfg = DefaultConfig()
			cfg.applyEnvOverrides()
			if cfg.Validate() != nil {
				cfg = DefaultConfig()
			}
		}
		current = cfg
	})
	return current
}
