package schedule

import (
	"sort"
	"sync"
	"time"
)

// Fake is a deterministic Scheduler. Time stands still until Advance is called;
// due callbacks then run synchronously in deadline order.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*fakeTask
}

type fakeTask struct {
	owner    *Fake
	deadline time.Duration
	order    int
	f        func()
	done     bool
}

func NewFake() *Fake { return &Fake{} }

func (c *Fake) AfterFunc(d time.Duration, f func()) Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTask{owner: c, deadline: c.now + d, order: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (t *fakeTask) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Elapsed returns the total time advanced so far.
func (c *Fake) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled calls that have neither fired nor been stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves time forward by d and runs every callback that became due.
// Do not call Advance from inside a callback.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		due := c.nextDueLocked(target)
		if due == nil {
			break
		}
		due.done = true
		c.now = due.deadline
		c.mu.Unlock()
		due.f()
		c.mu.Lock()
	}
	c.now = target
	c.compactLocked()
	c.mu.Unlock()
}

func (c *Fake) nextDueLocked(target time.Duration) *fakeTask {
	live := make([]*fakeTask, 0, len(c.pending))
	for _, t := range c.pending {
		if !t.done && t.deadline <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].deadline != live[j].deadline {
			return live[i].deadline < live[j].deadline
		}
		return live[i].order < live[j].order
	})
	return live[0]
}

func (c *Fake) compactLocked() {
	out := c.pending[:0]
	for _, t := range c.pending {
		if !t.done {
			out = append(out, t)
		}
	}
	c.pending = out
}
