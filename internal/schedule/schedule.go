// Package schedule provides cancellable deferred tasks.
//
// Production code uses Real(); tests use NewFake() and move time forward with Advance.
package schedule

import (
	"sync"
	"time"
)

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Task is a pending call. Stop reports whether it prevented the call.
type Task interface {
	Stop() bool
}

// Real returns a Scheduler backed by time.AfterFunc. Callbacks run on their own goroutine.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Handle owns at most one pending task. Arm cancels the previous task before scheduling the next,
// so re-triggering the same action restarts its delay instead of stacking calls.
type Handle struct {
	sched Scheduler

	mu   sync.Mutex
	task Task
}

func NewHandle(s Scheduler) *Handle {
	if s == nil {
		s = Real()
	}
	return &Handle{sched: s}
}

func (h *Handle) Arm(d time.Duration, f func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.task != nil {
		h.task.Stop()
	}
	h.task = h.sched.AfterFunc(d, f)
}

// Cancel stops the pending task, if any.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.task == nil {
		return false
	}
	stopped := h.task.Stop()
	h.task = nil
	return stopped
}
