package loadgen

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid load config")

// ErrVerification is returned when rosters disagree with the accepted changes.
var ErrVerification = errors.New("roster verification failed")

// Config holds configuration for a load run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Participants int           // Number of synthetic participants to sign up
	Workers      int           // Number of concurrent workers
	Activity     string        // Restrict traffic to one activity; empty spreads over all
	EmailDomain  string        // Domain of generated emails
	Timeout      time.Duration // HTTP request timeout
	OutputFile   string        // Optional JSON report of the run
	Verbose      bool          // Log every rejected request
}

// Validate checks the run parameters.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	case c.Participants <= 0:
		return fmt.Errorf("%w: participants must be positive, got %d", ErrInvalidConfig, c.Participants)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// Job is one synthetic participant bound to one activity.
type Job struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

// ActivityView mirrors one entry of GET /activities.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Stats holds run statistics.
type Stats struct {
	RunID                 string        `json:"run_id"`
	JobsGenerated         int           `json:"jobs_generated"`
	Signups               int           `json:"signups"`
	SignupsRejected       int           `json:"signups_rejected"`
	SignupsFailed         int           `json:"signups_failed"`
	Unregistrations       int           `json:"unregistrations"`
	UnregistrationsFailed int           `json:"unregistrations_failed"`
	Mismatches            int           `json:"mismatches"`
	StartTime             time.Time     `json:"start_time"`
	EndTime               time.Time     `json:"end_time"`
	Duration              time.Duration `json:"duration"`
}
