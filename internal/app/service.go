// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// ErrNotStarted is returned by directory operations before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns one activity directory and applies the signup rules to it.
type Service struct {
	mu sync.RWMutex

	directory repository.Store

	// Configuration
	seed                  map[string]activity.Activity
	enforceCapacity       bool
	metricsUpdateInterval time.Duration

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed sets the activities offered at start. Nil keeps the default seed.
func WithSeed(seed map[string]activity.Activity) Option {
	return func(s *Service) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// WithCapacityEnforcement rejects signups into full activities.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enabled
	}
}

// WithMetricsUpdateInterval sets how often directory gauges are refreshed.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed: activity.DefaultSeed(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the directory from the seed.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	for name, a := range s.seed {
		a.Name = name
		if err := a.Validate(); err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
	}

	s.directory = repository.NewMemStore(ctx, s.seed,
		repository.WithCapacityEnforcement(s.enforceCapacity),
		repository.WithMetricsUpdateInterval(s.metricsUpdateInterval),
	)

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.directory.Count(ctx)),
		logger.Int("participants", s.directory.Participants(ctx)),
		logger.Bool("enforceCapacity", s.enforceCapacity),
	)
	return nil
}

// Stop releases the directory. A later Start rebuilds it from the seed.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.directory.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.directory = nil
	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.directory, nil
}

// List returns every activity keyed by name.
func (s *Service) List(ctx context.Context) (map[string]activity.Activity, error) {
	dir, err := s.store()
	if err != nil {
		return nil, err
	}
	return dir.List(ctx), nil
}

// Signup adds email to the roster of name and returns a confirmation message.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	dir, err := s.store()
	if err != nil {
		return "", err
	}
	if err := dir.AddParticipant(ctx, name, email); err != nil {
		s.reject(ctx, "signup", name, email, err)
		return "", err
	}
	metrics.RecordSignup(name)
	s.logger.Info(ctx, "participant signed up", logger.String("activity", name), logger.String("email", email))
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the roster of name and returns a confirmation message.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	dir, err := s.store()
	if err != nil {
		return "", err
	}
	if err := dir.RemoveParticipant(ctx, name, email); err != nil {
		s.reject(ctx, "unregister", name, email, err)
		return "", err
	}
	metrics.RecordUnregistration(name)
	s.logger.Info(ctx, "participant unregistered", logger.String("activity", name), logger.String("email", email))
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

func (s *Service) reject(ctx context.Context, op, name, email string, err error) {
	metrics.RecordRejection(op, rejectionReason(err))
	s.logger.Debug(ctx, "roster change rejected",
		logger.String("op", op),
		logger.String("activity", name),
		logger.String("email", email),
		logger.Error(err),
	)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, activity.ErrNotFound):
		return "not_found"
	case errors.Is(err, activity.ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, activity.ErrNotSignedUp):
		return "not_signed_up"
	case errors.Is(err, activity.ErrActivityFull):
		return "full"
	default:
		return "other"
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"enforceCapacity": s.enforceCapacity,
	}

	if s.started {
		ctx := context.Background()
		count := s.directory.Count(ctx)
		stats["activities"] = count
		stats["participants"] = s.directory.Participants(ctx)
		metrics.UpdateActivityCount(count)
	}

	return stats
}
