// Package highlight tracks the transient "just updated" flash on trait slots.
package highlight

import (
	"sync"
	"time"

	"siralim-planner/internal/model"
	"siralim-planner/internal/schedule"
)

// Window is how long a slot stays flagged after its content changes.
const Window = 1000 * time.Millisecond

// Tracker flags slots as just updated and expires the flag after Window.
//
// Every Mark returns a sequence token; Expire only clears the flag for the latest token of that slot,
// so a newer change restarts the window. With a scheduler attached, Mark also arms the expiry itself,
// replacing the slot's previous pending expiry.
type Tracker struct {
	sched schedule.Scheduler

	mu      sync.Mutex
	seq     int
	entries map[model.SlotAddress]*entry
	fresh   []Mark
}

// Mark is one raised flag and the token that expires it.
type Mark struct {
	Addr model.SlotAddress
	Seq  int
}

type entry struct {
	on     bool
	seq    int
	expiry *schedule.Handle
}

// New returns a tracker. A nil scheduler leaves expiry to the caller (see Expire).
func New(s schedule.Scheduler) *Tracker {
	return &Tracker{sched: s, entries: map[model.SlotAddress]*entry{}}
}

// Mark flags addr as just updated and returns the token that expires it.
func (t *Tracker) Mark(addr model.SlotAddress) int {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	e := t.entries[addr]
	if e == nil {
		e = &entry{}
		t.entries[addr] = e
	}
	e.on = true
	e.seq = seq
	if t.sched == nil {
		t.fresh = append(t.fresh, Mark{Addr: addr, Seq: seq})
	} else if e.expiry == nil {
		e.expiry = schedule.NewHandle(t.sched)
	}
	h := e.expiry
	t.mu.Unlock()

	if h != nil {
		h.Arm(Window, func() { t.Expire(addr, seq) })
	}
	return seq
}

// Expire clears the flag if seq is still the latest token for addr. Stale tokens are ignored.
func (t *Tracker) Expire(addr model.SlotAddress, seq int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[addr]
	if e == nil || e.seq != seq || !e.on {
		return false
	}
	e.on = false
	return true
}

// Drain returns the marks raised since the previous call, oldest first.
// Only a tracker without a scheduler records them; its owner expires each one after Window.
func (t *Tracker) Drain() []Mark {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.fresh
	t.fresh = nil
	return out
}

// Active reports whether addr is currently flagged.
func (t *Tracker) Active(addr model.SlotAddress) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[addr]
	return e != nil && e.on
}

// Stop cancels every pending expiry and clears all flags.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.expiry != nil {
			e.expiry.Cancel()
		}
		e.on = false
	}
}
