package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacityEnforcement rejects signups once max_participants is reached.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *MemStore) {
		s.enforceCapacity = enabled
	}
}

// WithMetricsUpdateInterval sets the interval for background gauge updates.
// Zero disables the background updater.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemStore) {
		if interval >= 0 {
			s.metricsUpdateInterval = interval
		}
	}
}
