// Package config loads pulsecot settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Engine  EngineConfig  `yaml:"engine"`
	Batch   BatchConfig   `yaml:"batch"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// CorpusConfig selects the knowledge corpus.
type CorpusConfig struct {
	// Dir replaces the embedded catalogs with the *.yaml files of a directory.
	Dir string `yaml:"dir"`
}

// EngineConfig tunes chain generation.
type EngineConfig struct {
	Confidence types.Confidence `yaml:"confidence"`
}

// BatchConfig tunes batch generation.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// ValidLevels lists the accepted log levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats lists the accepted log formats.
var ValidFormats = []string{"json", "console"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Engine: EngineConfig{
			Confidence: types.DefaultConfidence(),
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PULSECOT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PULSECOT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("PULSECOT_CORPUS_DIR"); v != "" {
		c.Corpus.Dir = v
	}
	if v := os.Getenv("PULSECOT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PULSECOT_WORKERS %q: %w", v, err)
		}
		c.Batch.Workers = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	if !c.Engine.Confidence.Valid() {
		return fmt.Errorf("engine confidence values must lie in [0,1]")
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}
