package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PACELINE_CONFIG is set
//  3. env (prefix PACELINE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PACELINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PACELINE_ADDR, PACELINE_DATA_PATH, ...
	// Keys map to the flat koanf tags, underscores preserved.
	envProvider := env.Provider("PACELINE_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "paceline_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DefaultUnit != "mile" && c.DefaultUnit != "kilometer":
		return fmt.Errorf("%w: default_unit must be mile or kilometer, got %q", ErrInvalidConfig, c.DefaultUnit)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.RunnerField == "" || c.YearField == "" || c.TimeField == "" || c.EventField == "":
		return fmt.Errorf("%w: all four field names must be set", ErrInvalidConfig)
	}
	return nil
}
