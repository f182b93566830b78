// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and ACTIVITIES_* env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile points to a YAML file with the activities offered at startup.
	// Empty means the built-in seed.
	SeedFile string `koanf:"seed_file"`

	// EnforceCapacity rejects signups once an activity reaches max_participants.
	EnforceCapacity bool `koanf:"enforce_capacity"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsIntervalMS sets how often system and directory gauges are refreshed.
	// Zero disables refreshing.
	MetricsIntervalMS int `koanf:"metrics_interval_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8000",
		EnforceCapacity:   false,
		MetricsEnabled:    true,
		MetricsIntervalMS: 5000,
	}
}
