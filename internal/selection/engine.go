// Package selection derives the searchable, sortable, tabbed list shown by the spell and monster pickers.
package selection

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"siralim-planner/internal/model"
	"siralim-planner/internal/schedule"
)

// DebounceDelay is how long typing must pause before the search term is applied.
const DebounceDelay = 500 * time.Millisecond

// TabAll is the first tab; it shows every filtered item.
const TabAll = "All"

// ClassTabs returns "All" followed by one tab per creature class.
func ClassTabs() []string {
	return append([]string{TabAll}, model.CreatureClasses...)
}

// Schema tells the engine how to read an item.
type Schema[T any] struct {
	UID        func(T) string
	SearchText func(T) string
	Category   func(T) string
}

type Option func(*options)

type options struct {
	sched   schedule.Scheduler
	tabs    []string
	delay   time.Duration
	onApply func(term string)
}

// WithScheduler makes Type arm the debounce itself. Without it the caller delivers Apply(seq).
func WithScheduler(s schedule.Scheduler) Option { return func(o *options) { o.sched = s } }

func WithTabs(tabs ...string) Option { return func(o *options) { o.tabs = tabs } }

func WithDelay(d time.Duration) Option { return func(o *options) { o.delay = d } }

// OnApply registers a hook called after a search term is applied.
func OnApply(f func(term string)) Option { return func(o *options) { o.onApply = f } }

// Engine holds the filter, sort, tab and scroll state for one picker instance.
type Engine[T any] struct {
	schema   Schema[T]
	items    []T
	docs     [][]byte
	tabs     []string
	delay    time.Duration
	debounce *schedule.Handle
	onApply  func(string)

	mu       sync.Mutex
	current  string
	applied  string
	seq      int
	pending  bool
	sort     SortState
	tab      int
	offset   int
	filtered []int
}

func NewEngine[T any](items []T, schema Schema[T], opts ...Option) *Engine[T] {
	o := options{tabs: ClassTabs(), delay: DebounceDelay}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.tabs) == 0 {
		o.tabs = []string{TabAll}
	}
	e := &Engine[T]{
		schema:  schema,
		items:   items,
		docs:    encodeDocs(items),
		tabs:    o.tabs,
		delay:   o.delay,
		onApply: o.onApply,
	}
	if o.sched != nil {
		e.debounce = schedule.NewHandle(o.sched)
	}
	e.refilterLocked()
	return e
}

// Term is the search input's visible value, applied or not.
func (e *Engine[T]) Term() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// AppliedTerm is the term the current results were filtered with.
func (e *Engine[T]) AppliedTerm() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied
}

// Delay returns the debounce delay.
func (e *Engine[T]) Delay() time.Duration { return e.delay }

// Type records a keystroke. It returns the token that applies this term; older tokens become stale.
func (e *Engine[T]) Type(term string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = term
	e.seq++
	e.pending = true
	seq := e.seq
	// Armed under e.mu so the newest token is always the one left pending.
	if e.debounce != nil {
		e.debounce.Arm(e.delay, func() { e.Apply(seq) })
	}
	return seq
}

// Apply applies the typed term if seq is the latest token. It reports whether anything was applied.
func (e *Engine[T]) Apply(seq int) bool {
	e.mu.Lock()
	if !e.pending || seq != e.seq {
		e.mu.Unlock()
		return false
	}
	term := e.applyLocked()
	hook := e.onApply
	e.mu.Unlock()

	if hook != nil {
		hook(term)
	}
	return true
}

// Flush applies the typed term now and drops the pending debounce.
func (e *Engine[T]) Flush() bool {
	if e.debounce != nil {
		e.debounce.Cancel()
	}
	e.mu.Lock()
	if !e.pending {
		e.mu.Unlock()
		return false
	}
	term := e.applyLocked()
	hook := e.onApply
	e.mu.Unlock()

	if hook != nil {
		hook(term)
	}
	return true
}

func (e *Engine[T]) applyLocked() string {
	e.pending = false
	e.applied = e.current
	e.refilterLocked()
	return e.applied
}

// Cancel discards the unapplied term and any pending debounce.
func (e *Engine[T]) Cancel() {
	if e.debounce != nil {
		e.debounce.Cancel()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = false
	e.current = e.applied
}

// Pending reports whether a typed term is waiting to be applied.
func (e *Engine[T]) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

func (e *Engine[T]) Sort() SortState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sort
}

// ToggleSort advances the sort state for field and re-derives the results.
func (e *Engine[T]) ToggleSort(field string) SortState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sort = e.sort.Toggle(field)
	e.refilterLocked()
	return e.sort
}

// SetSort replaces the sort state and re-derives the results.
func (e *Engine[T]) SetSort(s SortState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.Order == OrderNone || s.Field == "" {
		s = SortState{}
	}
	e.sort = s
	e.refilterLocked()
}

// refilterLocked rebuilds the filtered list and returns to the first tab, scrolled to the top.
func (e *Engine[T]) refilterLocked() {
	term := strings.ToLower(e.applied)
	idx := make([]int, 0, len(e.items))
	for i, it := range e.items {
		if strings.Contains(strings.ToLower(e.schema.SearchText(it)), term) {
			idx = append(idx, i)
		}
	}
	if e.sort.Active() {
		sortIndices(idx, e.docs, e.sort.Field, e.sort.Order)
	}
	e.filtered = idx
	e.tab = 0
	e.offset = 0
}

func (e *Engine[T]) Tabs() []string { return append([]string(nil), e.tabs...) }

func (e *Engine[T]) Tab() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tab
}

// SetTab switches tabs without re-running filter or sort. Out-of-range tabs are clamped.
func (e *Engine[T]) SetTab(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case i < 0:
		i = 0
	case i >= len(e.tabs):
		i = len(e.tabs) - 1
	}
	e.tab = i
	e.offset = 0
}

// Offset is the results scroll position (index of the first visible row).
func (e *Engine[T]) Offset() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.offset
}

func (e *Engine[T]) SetOffset(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n < 0 {
		n = 0
	}
	e.offset = n
}

// Filtered returns every item matching the applied term, sorted, across all tabs.
func (e *Engine[T]) Filtered() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]T, 0, len(e.filtered))
	for _, i := range e.filtered {
		out = append(out, e.items[i])
	}
	return out
}

// View returns the filtered items belonging to the current tab.
func (e *Engine[T]) View() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]T, 0, len(e.filtered))
	for _, i := range e.filtered {
		it := e.items[i]
		if e.tab == 0 || strings.EqualFold(e.schema.Category(it), e.tabs[e.tab]) {
			out = append(out, it)
		}
	}
	return out
}

// Total is the catalog size.
func (e *Engine[T]) Total() int { return len(e.items) }

// IsSelected reports whether item is the one currently assigned to the slot being edited.
func (e *Engine[T]) IsSelected(item T, currentUID string) bool {
	return currentUID != "" && e.schema.UID(item) == currentUID
}

var printer = message.NewPrinter(language.English)

// ResultsCount describes how many results are shown, e.g. "Displaying 12 of 1,204 results."
func (e *Engine[T]) ResultsCount() string {
	e.mu.Lock()
	n, total, applied := len(e.filtered), len(e.items), e.applied
	e.mu.Unlock()

	var s string
	if n == total {
		s = printer.Sprintf("Displaying all %d results", total)
	} else {
		s = printer.Sprintf("Displaying %d of %d results", n, total)
	}
	if applied != "" {
		s += " matching the current search term"
	}
	return s + "."
}
