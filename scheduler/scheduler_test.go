package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter records refresh invocations per key
type counter struct {
	mu    sync.Mutex
	calls map[string]int
}

func newCounter() *counter {
	return &counter{calls: make(map[string]int)}
}

func (c *counter) refresh(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[key]++
}

func (c *counter) count(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %v", timeout)
}

func TestRefreshScheduler_RunsImmediatelyAndPeriodically(t *testing.T) {
	c := newCounter()
	s := NewRefreshScheduler(100 * time.Millisecond)
	defer s.CancelAll()

	s.EnsureScheduled("London", c.refresh)

	// Zero initial delay: the first run fires right away.
	waitFor(t, 2*time.Second, func() bool { return c.count("London") >= 1 })
	// And the schedule keeps firing every period.
	waitFor(t, 2*time.Second, func() bool { return c.count("London") >= 3 })
}

func TestRefreshScheduler_EnsureScheduledIsIdempotent(t *testing.T) {
	c := newCounter()
	s := NewRefreshScheduler(50 * time.Millisecond)
	defer s.CancelAll()

	for i := 0; i < 5; i++ {
		s.EnsureScheduled("London", c.refresh)
	}

	assert.True(t, s.IsScheduled("London"))
	waitFor(t, 2*time.Second, func() bool { return c.count("London") >= 2 })

	// With one job, counts grow roughly one per period; five duplicate
	// jobs would overshoot this bound immediately.
	time.Sleep(120 * time.Millisecond)
	assert.Less(t, c.count("London"), 10)
}

func TestRefreshScheduler_TracksKeysIndependently(t *testing.T) {
	c := newCounter()
	s := NewRefreshScheduler(100 * time.Millisecond)
	defer s.CancelAll()

	s.EnsureScheduled("London", c.refresh)
	s.EnsureScheduled("Kyiv", c.refresh)

	assert.True(t, s.IsScheduled("London"))
	assert.True(t, s.IsScheduled("Kyiv"))
	assert.False(t, s.IsScheduled("Oslo"))

	waitFor(t, 2*time.Second, func() bool {
		return c.count("London") >= 1 && c.count("Kyiv") >= 1
	})
}

func TestRefreshScheduler_FailuresDoNotStopSchedule(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	s := NewRefreshScheduler(50 * time.Millisecond)
	defer s.CancelAll()

	// The refresh function represents a fetch that keeps failing; the
	// scheduler must keep invoking it anyway.
	s.EnsureScheduled("London", func(key string) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 3
	})
}

func TestRefreshScheduler_CancelAllStopsFutureRuns(t *testing.T) {
	c := newCounter()
	s := NewRefreshScheduler(50 * time.Millisecond)

	s.EnsureScheduled("London", c.refresh)
	waitFor(t, 2*time.Second, func() bool { return c.count("London") >= 1 })

	s.CancelAll()
	// Allow any run already in flight at cancellation time to finish.
	time.Sleep(100 * time.Millisecond)
	settled := c.count("London")

	// Observe several would-be periods: no further runs may fire.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, settled, c.count("London"))

	// And new scheduling requests are no-ops after cancellation.
	s.EnsureScheduled("Kyiv", c.refresh)
	assert.False(t, s.IsScheduled("Kyiv"))
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, c.count("Kyiv"))
}

func TestRefreshScheduler_CancelAllIsIdempotent(t *testing.T) {
	s := NewRefreshScheduler(50 * time.Millisecond)
	s.EnsureScheduled("London", func(string) {})

	assert.NotPanics(t, func() {
		s.CancelAll()
		s.CancelAll()
	})
}
