package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/solver-foundry/internal/ctxlog"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Default horizons and subset size
const (
	DefaultQualityHorizon = 24
	DefaultProductHorizon = 32
	DefaultProductCount   = 3
)

// Config holds everything a run needs besides the blueprints themselves
type Config struct {
	Input          string `yaml:"input"`
	QualityHorizon int    `yaml:"quality_horizon"`
	ProductHorizon int    `yaml:"product_horizon"`
	ProductCount   int    `yaml:"product_count"`
	Workers        int    `yaml:"workers"` // 0 = one per CPU
	HistoryDB      string `yaml:"history_db"`

	Log Log `yaml:"log"`
}

// Log selects the slog handler
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Input:          "data/blueprints.txt",
		QualityHorizon: DefaultQualityHorizon,
		ProductHorizon: DefaultProductHorizon,
		ProductCount:   DefaultProductCount,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	if c.QualityHorizon < 0 {
		return fmt.Errorf("%w: quality_horizon must not be negative, got %d", ErrInvalidConfig, c.QualityHorizon)
	}
	if c.ProductHorizon < 0 {
		return fmt.Errorf("%w: product_horizon must not be negative, got %d", ErrInvalidConfig, c.ProductHorizon)
	}
	if c.ProductCount < 0 {
		return fmt.Errorf("%w: product_count must not be negative, got %d", ErrInvalidConfig, c.ProductCount)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := ctxlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
