package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/mergington/activities/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.EnforceCapacity, convey.ShouldBeFalse)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
				convey.So(cfg.MetricsIntervalMS, convey.ShouldEqual, 5000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ACTIVITIES_ADDR", ":8080")
			_ = os.Setenv("ACTIVITIES_LOG_LEVEL", "debug")
			_ = os.Setenv("ACTIVITIES_LOG_FORMAT", "json")
			_ = os.Setenv("ACTIVITIES_SEED_FILE", "/etc/activities/seed.yaml")
			_ = os.Setenv("ACTIVITIES_ENFORCE_CAPACITY", "true")
			_ = os.Setenv("ACTIVITIES_METRICS_INTERVAL_MS", "1000")
			_ = os.Setenv("ACTIVITIES_METRICS_ENABLED", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.SeedFile, convey.ShouldEqual, "/etc/activities/seed.yaml")
				convey.So(cfg.EnforceCapacity, convey.ShouldBeTrue)
				convey.So(cfg.MetricsIntervalMS, convey.ShouldEqual, 1000)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempFile(`
addr: ":9090"
log_level: warn
enforce_capacity: true
metrics_interval_ms: 250
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.EnforceCapacity, convey.ShouldBeTrue)
				convey.So(cfg.MetricsIntervalMS, convey.ShouldEqual, 250)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempFile(`
addr: ":9090"
enforce_capacity: true
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)
			_ = os.Setenv("ACTIVITIES_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EnforceCapacity, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ACTIVITIES_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr in the file", func() {
			tmpFile := createTempFile(`addr: ""`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ACTIVITIES_METRICS_INTERVAL_MS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestLoadSeed(t *testing.T) {
	convey.Convey("Given seed files", t, func() {
		ctx := context.Background()

		convey.Convey("When the file lists activities", func() {
			tmpFile := createTempFile(`
activities:
  Robotics Lab:
    description: Build and program robots
    schedule: Saturdays, 10:00 AM - 12:00 PM
    max_participants: 8
    participants:
      - ada@mergington.edu
      - alan@mergington.edu
  St. Patrick's Choir:
    description: Seasonal choir
    schedule: Mondays, 5:00 PM - 6:00 PM
    max_participants: 30
`)
			defer func() { _ = os.Remove(tmpFile) }()

			seed, err := config.LoadSeed(ctx, tmpFile)

			convey.Convey("Then every activity is decoded with its name", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(seed), convey.ShouldEqual, 2)

				lab := seed["Robotics Lab"]
				convey.So(lab.Name, convey.ShouldEqual, "Robotics Lab")
				convey.So(lab.MaxParticipants, convey.ShouldEqual, 8)
				convey.So(lab.Participants, convey.ShouldResemble, []string{"ada@mergington.edu", "alan@mergington.edu"})

				choir, ok := seed["St. Patrick's Choir"]
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(choir.Participants, convey.ShouldNotBeNil)
				convey.So(choir.Participants, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a roster repeats an email", func() {
			tmpFile := createTempFile(`
activities:
  Chess Club:
    participants: [a@mergington.edu, a@mergington.edu]
`)
			defer func() { _ = os.Remove(tmpFile) }()

			seed, err := config.LoadSeed(ctx, tmpFile)

			convey.Convey("Then the seed is rejected", func() {
				convey.So(seed, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "already signed up")
			})
		})

		convey.Convey("When the file has no activities", func() {
			tmpFile := createTempFile(`other: value`)
			defer func() { _ = os.Remove(tmpFile) }()

			_, err := config.LoadSeed(ctx, tmpFile)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.LoadSeed(ctx, "/non/existent/seed.yaml")
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ACTIVITIES_CONFIG",
		"ACTIVITIES_ADDR",
		"ACTIVITIES_LOG_LEVEL",
		"ACTIVITIES_LOG_FORMAT",
		"ACTIVITIES_SEED_FILE",
		"ACTIVITIES_ENFORCE_CAPACITY",
		"ACTIVITIES_METRICS_INTERVAL_MS",
		"ACTIVITIES_METRICS_ENABLED",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(content string) string {
	tmpFile, err := os.CreateTemp("", "activities-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
