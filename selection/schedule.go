package selection

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one animation frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler coalesces work to frame boundaries. Requesting while a request
// is pending replaces the pending function, so a burst of requests runs the
// work once.
type Scheduler interface {
	// Request schedules fn for the next frame, replacing any pending
	// function
	Request(fn func())

	// Cancel drops any pending function without running it
	Cancel()
}

// TimerScheduler is the default Scheduler, built on a single reusable
// timer. The scheduled function runs on the timer's goroutine.
type TimerScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	pending  func()
}

// NewTimerScheduler creates a scheduler firing after the given interval.
// A non-positive interval falls back to DefaultFrameInterval.
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerScheduler{interval: interval}
}

// Request schedules fn for the next frame. A pending request is replaced
// and its timer restarted, so only the latest function runs.
func (s *TimerScheduler) Request(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = fn
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.fire)
		return
	}
	s.timer.Stop()
	s.timer.Reset(s.interval)
}

// Cancel drops the pending function, if any.
func (s *TimerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *TimerScheduler) fire() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}
