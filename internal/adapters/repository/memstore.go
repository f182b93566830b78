package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/pkg/metrics"
)

// MemStore is the in-memory activity directory. A single RWMutex guards every
// roster: List and Get share the read lock, roster changes hold the write lock
// for the whole read-modify-write.
type MemStore struct {
	mu         sync.RWMutex
	activities map[string]*activity.Activity

	enforceCapacity       bool
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*MemStore)(nil)

// NewMemStore builds a directory holding copies of the seed activities.
func NewMemStore(ctx context.Context, seed map[string]activity.Activity, opts ...Option) *MemStore {
	s := &MemStore{
		activities:            make(map[string]*activity.Activity, len(seed)),
		metricsUpdateInterval: 0,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	for name, a := range seed {
		c := a.Clone()
		c.Name = name
		s.activities[name] = &c
	}

	s.publishMetrics()
	if s.metricsUpdateInterval > 0 {
		s.startMetricsUpdater(ctx)
	}
	return s
}

// startMetricsUpdater refreshes directory gauges until ctx ends or Close is called.
func (s *MemStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishMetrics()
			}
		}
	}()
}

func (s *MemStore) publishMetrics() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.UpdateActivityCount(len(s.activities))
	for name, a := range s.activities {
		metrics.UpdateParticipantCount(name, len(a.Participants))
		metrics.UpdateSpotsLeft(name, a.SpotsLeft())
	}
}

// Close stops the background metrics updater.
func (s *MemStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// List returns a deep copy of the directory.
func (s *MemStore) List(_ context.Context) map[string]activity.Activity {
	start := time.Now()
	defer observe("list", start)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]activity.Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out
}

// AddParticipant signs email up for name.
func (s *MemStore) AddParticipant(_ context.Context, name, email string) error {
	start := time.Now()
	defer observe("signup", start)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		metrics.RecordErrorByComponent("directory", "not_found")
		return &activity.RosterError{Kind: ErrNotFound, Activity: name, Email: email}
	}
	if a.HasParticipant(email) {
		return &activity.RosterError{Kind: ErrAlreadySignedUp, Activity: name, Email: email}
	}
	if s.enforceCapacity && a.Full() {
		return &activity.RosterError{Kind: ErrActivityFull, Activity: name, Email: email}
	}

	a.Participants = append(a.Participants, email)
	metrics.UpdateParticipantCount(name, len(a.Participants))
	metrics.UpdateSpotsLeft(name, a.SpotsLeft())
	return nil
}

// RemoveParticipant unregisters email from name, keeping the order of the
// remaining roster.
func (s *MemStore) RemoveParticipant(_ context.Context, name, email string) error {
	start := time.Now()
	defer observe("unregister", start)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		metrics.RecordErrorByComponent("directory", "not_found")
		return &activity.RosterError{Kind: ErrNotFound, Activity: name, Email: email}
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return &activity.RosterError{Kind: ErrNotSignedUp, Activity: name, Email: email}
	}

	a.Participants = slices.Delete(a.Participants, i, i+1)
	metrics.UpdateParticipantCount(name, len(a.Participants))
	metrics.UpdateSpotsLeft(name, a.SpotsLeft())
	return nil
}

// Count returns the number of activities.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Participants returns the total roster size across activities.
func (s *MemStore) Participants(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, a := range s.activities {
		total += len(a.Participants)
	}
	return total
}

func observe(op string, start time.Time) {
	metrics.RecordDirectoryLatency(op, float64(time.Since(start).Microseconds())/1000)
}
