// Package config loads application configuration from a YAML file with
// ATPULSE_* environment overrides. The reference analysis constants
// (country allow list, year trims, display scales, excluded points) are
// configuration data here, never code.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"atpulse/internal/mobility"
)

// Config represents the complete application configuration
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// PipelineConfig mirrors mobility.Options in serializable form.
type PipelineConfig struct {
	CountryAllowList  []string           `yaml:"country_allow_list" envconfig:"COUNTRY_ALLOW_LIST"`
	MinYearExclusive  map[string]int     `yaml:"min_year_exclusive"`
	BikeDisplayScale  map[string]float64 `yaml:"bike_display_scale"`
	TrendExclusions   []ExclusionConfig  `yaml:"trend_exclusions"`
	MinYearsForSeries int                `yaml:"min_years_for_series" envconfig:"MIN_YEARS_FOR_SERIES" default:"3" validate:"min=1"`
	SignificanceAlpha float64            `yaml:"significance_alpha" envconfig:"SIGNIFICANCE_ALPHA" default:"0.05" validate:"gt=0,lt=1"`
	MaxConcurrency    int                `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" default:"4" validate:"min=1"`
}

// ExclusionConfig is one excluded trend point in the config file.
type ExclusionConfig struct {
	Country    string `yaml:"country" validate:"required"`
	Category   string `yaml:"category" validate:"oneof=walk bike"`
	Year       int    `yaml:"year" validate:"required"`
	AtOrBefore bool   `yaml:"at_or_before"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	RecordsFile string `yaml:"records_file" envconfig:"RECORDS_FILE" default:"data/activity_records.csv"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/reports"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// Load loads configuration from an optional YAML file, then applies
// environment overrides and validates the result.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Environment variables win over the file; envconfig also fills
	// defaults for anything still unset.
	if err := envconfig.Process("ATPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyDefaults covers fields envconfig cannot default (set only when the
// file left them zero).
func applyDefaults(cfg *Config) {
	if cfg.Pipeline.MinYearsForSeries == 0 {
		cfg.Pipeline.MinYearsForSeries = 3
	}
	if cfg.Pipeline.SignificanceAlpha == 0 {
		cfg.Pipeline.SignificanceAlpha = 0.05
	}
	if cfg.Pipeline.MaxConcurrency == 0 {
		cfg.Pipeline.MaxConcurrency = 4
	}
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	for _, e := range c.Pipeline.TrendExclusions {
		if _, err := parseCategory(e.Category); err != nil {
			return err
		}
	}
	for country, scale := range c.Pipeline.BikeDisplayScale {
		if scale <= 0 {
			return fmt.Errorf("bike display scale for %s must be positive, got %v", country, scale)
		}
	}
	return nil
}

// PipelineOptions converts the config into mobility options.
func (c *Config) PipelineOptions() (mobility.Options, error) {
	opts := mobility.Options{
		CountryAllowList:  c.Pipeline.CountryAllowList,
		MinYearExclusive:  c.Pipeline.MinYearExclusive,
		BikeDisplayScale:  c.Pipeline.BikeDisplayScale,
		MinYearsForSeries: c.Pipeline.MinYearsForSeries,
		SignificanceAlpha: c.Pipeline.SignificanceAlpha,
	}
	for _, e := range c.Pipeline.TrendExclusions {
		cat, err := parseCategory(e.Category)
		if err != nil {
			return opts, err
		}
		opts.TrendExclusions = append(opts.TrendExclusions, mobility.Exclusion{
			Country:    e.Country,
			Category:   cat,
			Year:       e.Year,
			AtOrBefore: e.AtOrBefore,
		})
	}
	return opts, nil
}

func parseCategory(s string) (mobility.Category, error) {
	switch s {
	case "walk":
		return mobility.CategoryWalk, nil
	case "bike":
		return mobility.CategoryBike, nil
	case "any_travel":
		return mobility.CategoryAnyTravel, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}
