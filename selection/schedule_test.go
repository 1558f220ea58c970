package selection

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerSchedulerRunsRequest(t *testing.T) {
	sched := NewTimerScheduler(5 * time.Millisecond)

	done := make(chan struct{})
	sched.Request(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled function never ran")
	}
}

func TestTimerSchedulerReplacesPending(t *testing.T) {
	sched := NewTimerScheduler(20 * time.Millisecond)

	var first, second atomic.Int32
	sched.Request(func() { first.Add(1) })
	sched.Request(func() { second.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if got := first.Load(); got != 0 {
		t.Errorf("expected the replaced function to never run, ran %d times", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("expected the latest function to run once, ran %d times", got)
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	sched := NewTimerScheduler(20 * time.Millisecond)

	var ran atomic.Int32
	sched.Request(func() { ran.Add(1) })
	sched.Cancel()

	time.Sleep(100 * time.Millisecond)

	if got := ran.Load(); got != 0 {
		t.Errorf("expected no run after cancel, ran %d times", got)
	}
}

func TestTimerSchedulerReusable(t *testing.T) {
	sched := NewTimerScheduler(5 * time.Millisecond)

	var ran atomic.Int32
	for i := 0; i < 3; i++ {
		done := make(chan struct{})
		sched.Request(func() {
			ran.Add(1)
			close(done)
		})
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduled function never ran")
		}
	}

	if got := ran.Load(); got != 3 {
		t.Errorf("expected three separate runs, got %d", got)
	}
}
