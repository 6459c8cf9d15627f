package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"siralim-planner/internal/model"
	"siralim-planner/internal/schedule"
)

// Saver persists a named party. Store implements it.
type Saver interface {
	Save(ctx context.Context, name string, p model.Party) error
}

// Autosaver receives whole-state updates from the planner and writes the party after a quiet period.
// It implements party.Sink.
type Autosaver struct {
	store    Saver
	name     string
	debounce time.Duration
	timer    *schedule.Handle
	log      *slog.Logger

	// writeMu serializes writes so an older snapshot never lands after a newer one.
	writeMu sync.Mutex

	mu      sync.Mutex
	party   model.Party
	pending bool
	saves   int
	lastErr error
}

type AutosaverOpts struct {
	Store    Saver
	Name     string
	Initial  model.Party
	Debounce time.Duration
	// Scheduler drives the debounce; nil uses real timers.
	Scheduler schedule.Scheduler
	Logger    *slog.Logger
}

func NewAutosaver(opts AutosaverOpts) *Autosaver {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Autosaver{
		store:    opts.Store,
		name:     opts.Name,
		debounce: debounce,
		timer:    schedule.NewHandle(opts.Scheduler),
		log:      log,
		party:    opts.Initial,
	}
}

func (a *Autosaver) UpdatePartyMembers(m [model.PartySize]model.PartyMember) {
	a.mu.Lock()
	a.party.Members = m
	a.notifyLocked()
}

func (a *Autosaver) UpdateRelics(r [model.PartySize]*model.Relic) {
	a.mu.Lock()
	a.party.Relics = r
	a.notifyLocked()
}

func (a *Autosaver) UpdateSpells(s [model.PartySize][]*model.Spell) {
	a.mu.Lock()
	a.party.Spells = s
	a.notifyLocked()
}

func (a *Autosaver) UpdateNotes(n [model.PartySize]string) {
	a.mu.Lock()
	a.party.Notes = n
	a.notifyLocked()
}

// notifyLocked marks the party dirty and restarts the quiet period. It releases a.mu.
func (a *Autosaver) notifyLocked() {
	a.pending = true
	a.mu.Unlock()
	a.timer.Arm(a.debounce, a.onTimer)
}

func (a *Autosaver) onTimer() {
	if wrote, _ := a.write(context.Background()); !wrote {
		return
	}
	a.mu.Lock()
	again := a.pending
	a.mu.Unlock()
	if again {
		a.timer.Arm(a.debounce, a.onTimer)
	}
}

// write saves the latest snapshot if anything is pending. It waits for a write already in flight.
func (a *Autosaver) write(ctx context.Context) (bool, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if !a.pending {
		err := a.lastErr
		a.mu.Unlock()
		return false, err
	}
	a.pending = false
	snapshot := a.party
	a.mu.Unlock()

	err := a.store.Save(ctx, a.name, snapshot)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.recordLocked(err)
	return true, err
}

func (a *Autosaver) recordLocked(err error) {
	a.lastErr = err
	if err != nil {
		a.pending = true
		a.log.Warn("autosave failed", "party", a.name, "err", err)
		return
	}
	a.saves++
	a.log.Debug("autosaved party", "party", a.name)
}

// Flush writes any pending change now, after any write already in progress. Call it before exiting.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.timer.Cancel()
	_, err := a.write(ctx)
	return err
}

// Saves is the number of successful writes so far.
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

// Err is the result of the most recent write.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
