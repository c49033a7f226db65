// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads cinerec settings from TOML and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/janderssonse/cinerec/internal/aggregate"
	"github.com/janderssonse/cinerec/internal/catalog"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables consulted by Load.
const (
	EnvAPIBase  = "CINEREC_API_BASE"
	EnvConfig   = "CINEREC_CONFIG"
	EnvLogLevel = "CINEREC_LOG_LEVEL"
	EnvCap      = "CINEREC_CAP"
)

// DefaultAPIBase is the recommendation service used when nothing else is configured.
const DefaultAPIBase = "http://127.0.0.1:8000"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	d.Duration = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LogConfig is the [log] table.
type LogConfig struct {
	Level      string `toml:"level" validate:"oneof=trace debug info warn warning error disabled off none"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" validate:"gte=0"`
	MaxAge     int    `toml:"max_age" validate:"gte=0"`
}

// Config is the complete cinerec configuration.
type Config struct {
	APIBase        string            `toml:"api_base" validate:"required,url"`
	Timeout        Duration          `toml:"timeout"`
	Cap            int               `toml:"cap" validate:"gte=1,lte=100"`
	MaxConcurrency int               `toml:"max_concurrency" validate:"gte=1,lte=64"`
	Retries        uint              `toml:"retries" validate:"lte=10"`
	CacheTTL       Duration          `toml:"cache_ttl"`
	CacheSize      int               `toml:"cache_size" validate:"gte=0"`
	RateLimit      float64           `toml:"rate_limit" validate:"gte=0"`
	RateBurst      int               `toml:"rate_burst" validate:"gte=0"`
	Filler         string            `toml:"filler" validate:"oneof=unknown synthetic"`
	FillerSeed     uint64            `toml:"filler_seed"`
	Log            LogConfig         `toml:"log"`
	Catalog        catalog.Overrides `toml:"catalog"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:        DefaultAPIBase,
		Timeout:        Duration{30 * time.Second},
		Cap:            domain.DefaultCap,
		MaxConcurrency: 8,
		Retries:        1,
		CacheTTL:       Duration{10 * time.Minute},
		CacheSize:      256,
		RateBurst:      8,
		Filler:         aggregate.FillerUnknown,
		Log: LogConfig{
			Level:      "warn",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads the config file at path and applies environment overrides.
// An empty path selects $CINEREC_CONFIG or the XDG default; a missing
// default file is not an error.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup for testing.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env, ok := lookup(EnvConfig); ok && env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}

	path = ExpandPath(path)

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIBase); ok && strings.TrimSpace(v) != "" {
		c.APIBase = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(EnvCap); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvCap, err)
		}

		c.Cap = n
	}

	return nil
}

// Validate checks field ranges and the catalog overrides.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]

			return fmt.Errorf("%w: %s failed %q check (value %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Timeout.Duration < 0 || c.CacheTTL.Duration < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}

	if err := c.BuildCatalog().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// BuildCatalog returns the built-in catalog with the configured overrides applied.
func (c Config) BuildCatalog() catalog.Catalog {
	return catalog.Default().WithOverrides(c.Catalog)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
