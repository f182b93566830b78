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

	"github.com/mergington/activities/internal/domain/activity"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "ACTIVITIES_"
	EnvConfigPath = EnvPrefix + "CONFIG"
)

// seedDelim separates koanf key paths in seed files. Activity names may
// contain dots, so the default "." cannot be used.
const seedDelim = "::"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ACTIVITIES_CONFIG is set
//  3. env (prefix ACTIVITIES_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ACTIVITIES_SEED_FILE -> seed_file; underscores are kept to match koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MetricsIntervalMS < 0 {
		return fmt.Errorf("%w: metrics_interval_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadSeed reads the activities offered at startup from a YAML file shaped as:
//
//	activities:
//	  Chess Club:
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [a@mergington.edu]
func LoadSeed(_ context.Context, path string) (map[string]activity.Activity, error) {
	k := koanf.New(seedDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: seed %s: %w", ErrLoadConfig, path, err)
	}

	var raw map[string]activity.Activity
	if err := k.UnmarshalWithConf("activities", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: seed %s: %w", ErrLoadConfig, path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: seed %s defines no activities", ErrInvalidConfig, path)
	}

	seed := make(map[string]activity.Activity, len(raw))
	for name, a := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: seed %s has an activity without a name", ErrInvalidConfig, path)
		}
		a.Name = name
		if a.Participants == nil {
			a.Participants = []string{}
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: seed %s: %w", ErrInvalidConfig, path, err)
		}
		seed[name] = a
	}
	return seed, nil
}
