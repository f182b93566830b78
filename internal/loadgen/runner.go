// Package loadgen drives concurrent signup and unregister traffic against a
// running activities service and checks the rosters it reports.
package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// Runner executes load runs.
type Runner struct {
	config *Config
	client *Client
	logger logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for progress output.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *Client) Option {
	return func(r *Runner) {
		if c != nil {
			r.client = c
		}
	}
}

// NewRunner validates config and builds a Runner.
func NewRunner(config *Config, opts ...Option) (*Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{config: config}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = NewClient(config.BaseURL, config.Timeout)
	}
	if r.logger == nil {
		r.logger = logger.Get()
	}
	return r, nil
}

// Run signs every generated participant up, verifies the rosters, unregisters
// them again and verifies that they are gone.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{RunID: newRunID(), StartTime: time.Now()}
	log := r.logger.With(logger.String("runID", stats.RunID))

	log.Info(ctx, "starting signup load run",
		logger.String("baseURL", r.config.BaseURL),
		logger.Int("participants", r.config.Participants),
		logger.Int("workers", r.config.Workers),
		logger.String("activity", r.config.Activity),
		logger.Duration("timeout", r.config.Timeout))

	if err := r.client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	directory, err := r.client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("activity listing failed: %w", err)
	}
	names, err := targetActivities(directory, r.config.Activity)
	if err != nil {
		return stats, err
	}

	jobs := generateJobs(stats.RunID, names, r.config.Participants, r.config.EmailDomain)
	stats.JobsGenerated = len(jobs)

	signups := r.runPhase(ctx, "signup", jobs, r.client.Signup)
	accepted := make([]Job, 0, len(jobs))
	for i, o := range signups {
		switch o {
		case OutcomeOK:
			stats.Signups++
			accepted = append(accepted, jobs[i])
		case OutcomeRejected:
			stats.SignupsRejected++
		default:
			stats.SignupsFailed++
		}
	}

	after, err := r.client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("activity listing failed: %w", err)
	}
	stats.Mismatches += verifyRosters(after, accepted, true)

	unregisters := r.runPhase(ctx, "unregister", accepted, r.client.Unregister)
	for _, o := range unregisters {
		if o == OutcomeOK {
			stats.Unregistrations++
		} else {
			stats.UnregistrationsFailed++
		}
	}

	final, err := r.client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("activity listing failed: %w", err)
	}
	stats.Mismatches += verifyRosters(final, accepted, false)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	r.logStats(ctx, log, stats)

	if r.config.OutputFile != "" {
		if err := writeReport(r.config.OutputFile, stats, jobs); err != nil {
			log.Warn(ctx, "failed to write report", logger.Error(err))
		}
	}

	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d mismatches", ErrVerification, stats.Mismatches)
	}
	return stats, nil
}

// runPhase feeds jobs to a worker pool and returns one outcome per job, in
// job order.
func (r *Runner) runPhase(ctx context.Context, phase string, jobs []Job, call func(context.Context, Job) (Outcome, error)) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	for i := range outcomes {
		outcomes[i] = OutcomeFailed
	}

	var done, failed int64
	jobChan := make(chan int, r.config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for w := 0; w < r.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobChan {
				o, err := call(ctx, jobs[i])
				outcomes[i] = o
				atomic.AddInt64(&done, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if r.config.Verbose {
						r.logger.Debug(ctx, "request rejected",
							logger.String("phase", phase),
							logger.String("outcome", o.String()),
							logger.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for i := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- i:
			}
		}
	}()

	wg.Wait()

	r.logger.Info(ctx, "phase completed",
		logger.String("phase", phase),
		logger.Int("requests", int(atomic.LoadInt64(&done))),
		logger.Int("unsuccessful", int(atomic.LoadInt64(&failed))))
	return outcomes
}

func (r *Runner) logStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.JobsGenerated > 0 {
		successRate = float64(stats.Signups) / float64(stats.JobsGenerated) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.JobsGenerated+stats.Signups) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("jobsGenerated", stats.JobsGenerated),
		logger.Int("signups", stats.Signups),
		logger.Int("signupsRejected", stats.SignupsRejected),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("unregistrations", stats.Unregistrations),
		logger.Int("unregistrationsFailed", stats.UnregistrationsFailed),
		logger.Int("mismatches", stats.Mismatches),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}

// targetActivities returns the activity names a run spreads over.
func targetActivities(directory map[string]ActivityView, only string) ([]string, error) {
	if only != "" {
		if _, ok := directory[only]; !ok {
			return nil, fmt.Errorf("%w: activity %q not offered", ErrInvalidConfig, only)
		}
		return []string{only}, nil
	}
	if len(directory) == 0 {
		return nil, fmt.Errorf("%w: service offers no activities", ErrInvalidConfig)
	}
	names := make([]string, 0, len(directory))
	for name := range directory {
		names = append(names, name)
	}
	return names, nil
}

func writeReport(filename string, stats *Stats, jobs []Job) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(struct {
		Stats *Stats `json:"stats"`
		Jobs  []Job  `json:"jobs"`
	}{stats, jobs}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, data, reportFilePermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
