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
//  2. file (YAML) if ROSTERD_CONFIG is set
//  3. env (prefix ROSTERD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ROSTERD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROSTERD_ADDR, ROSTERD_DB_PATH, ...
	// Map env keys like ROSTERD_DB_PATH -> db_path (flat keys).
	envProvider := env.Provider("ROSTERD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rosterd_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if len(c.Teams) == 0 {
		return fmt.Errorf("%w: at least one team required", ErrInvalidConfig)
	}
	if len(c.Statuses) == 0 {
		return fmt.Errorf("%w: at least one status required", ErrInvalidConfig)
	}
	if c.DefaultStatus != "" {
		known := false
		for _, s := range c.Statuses {
			if s == c.DefaultStatus {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: default_status %q not in statuses", ErrInvalidConfig, c.DefaultStatus)
		}
	}
	return nil
}
