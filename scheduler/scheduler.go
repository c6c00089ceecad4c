// Package scheduler implements per-key background refresh scheduling
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// RefreshFunc performs one refresh attempt for a key. Errors are the
// callee's to report; the scheduler keeps firing regardless.
type RefreshFunc func(key string)

// RefreshScheduler owns one periodic refresh job per active key. Jobs
// run immediately on registration and then every period until CancelAll.
type RefreshScheduler struct {
	scheduler *gocron.Scheduler
	period    time.Duration

	mu        sync.Mutex
	jobs      map[string]*gocron.Job
	cancelled bool
}

func NewRefreshScheduler(period time.Duration) *RefreshScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.StartAsync()

	return &RefreshScheduler{
		scheduler: s,
		period:    period,
		jobs:      make(map[string]*gocron.Job),
	}
}

// EnsureScheduled registers a periodic refresh job for key. Idempotent:
// at most one job per key exists for the scheduler's lifetime. After
// CancelAll it is a no-op.
func (s *RefreshScheduler) EnsureScheduled(key string, refresh RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}
	if _, exists := s.jobs[key]; exists {
		return
	}

	job, err := s.scheduler.Every(s.period).StartImmediately().Do(func() {
		refresh(key)
	})
	if err != nil {
		slog.Error("schedule refresh job", "key", key, "error", err)
		return
	}

	s.jobs[key] = job
	slog.Debug("refresh job scheduled", "key", key, "period", s.period)
}

// IsScheduled reports whether a refresh job exists for key.
func (s *RefreshScheduler) IsScheduled(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.jobs[key]
	return exists
}

// CancelAll stops scheduling future runs for every key. Safe to call
// multiple times. It does not abort a refresh already in flight, so
// callers may observe one trailing cache write per key.
func (s *RefreshScheduler) CancelAll() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	s.jobs = make(map[string]*gocron.Job)
	s.mu.Unlock()

	s.scheduler.Stop()
}
