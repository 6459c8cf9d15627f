package highlight

import (
	"testing"
	"time"

	"siralim-planner/internal/model"
	"siralim-planner/internal/schedule"
)

func TestTracker_ExpiresAfterWindow(t *testing.T) {
	clk := schedule.NewFake()
	tr := New(clk)
	a := model.SlotAddress{PartyMemberID: 2, TraitSlotID: 1}

	tr.Mark(a)
	if !tr.Active(a) {
		t.Fatalf("expected flag set immediately after a change")
	}
	clk.Advance(Window - time.Millisecond)
	if !tr.Active(a) {
		t.Fatalf("expected flag still set before the window ends")
	}
	clk.Advance(time.Millisecond)
	if tr.Active(a) {
		t.Fatalf("expected flag cleared after %s", Window)
	}
}

func TestTracker_SecondChangeRestartsWindow(t *testing.T) {
	clk := schedule.NewFake()
	tr := New(clk)
	a := model.SlotAddress{PartyMemberID: 0, TraitSlotID: 0}

	tr.Mark(a)
	clk.Advance(600 * time.Millisecond)
	tr.Mark(a)
	clk.Advance(600 * time.Millisecond)
	if !tr.Active(a) {
		t.Fatalf("expected restarted window to keep the flag set at 1200ms")
	}
	if clk.Pending() != 1 {
		t.Fatalf("expected a single pending expiry per slot; got %d", clk.Pending())
	}
	clk.Advance(400 * time.Millisecond)
	if tr.Active(a) {
		t.Fatalf("expected flag cleared 1000ms after the last change")
	}
}

func TestTracker_SlotsAreIndependent(t *testing.T) {
	clk := schedule.NewFake()
	tr := New(clk)
	a := model.SlotAddress{PartyMemberID: 0, TraitSlotID: 0}
	b := model.SlotAddress{PartyMemberID: 5, TraitSlotID: 2}

	tr.Mark(a)
	clk.Advance(500 * time.Millisecond)
	tr.Mark(b)
	clk.Advance(500 * time.Millisecond)
	if tr.Active(a) || !tr.Active(b) {
		t.Fatalf("expected a expired and b active; got a=%v b=%v", tr.Active(a), tr.Active(b))
	}
}

func TestTracker_StaleTokenIgnored(t *testing.T) {
	tr := New(nil)
	a := model.SlotAddress{PartyMemberID: 1, TraitSlotID: 2}

	first := tr.Mark(a)
	second := tr.Mark(a)
	if tr.Expire(a, first) {
		t.Fatalf("expected stale token to be ignored")
	}
	if !tr.Active(a) {
		t.Fatalf("expected flag to survive a stale expiry")
	}
	if !tr.Expire(a, second) {
		t.Fatalf("expected current token to expire the flag")
	}
	if tr.Active(a) {
		t.Fatalf("expected flag cleared")
	}
}

func TestTracker_Stop(t *testing.T) {
	clk := schedule.NewFake()
	tr := New(clk)
	a := model.SlotAddress{PartyMemberID: 3, TraitSlotID: 0}
	tr.Mark(a)
	tr.Stop()
	if tr.Active(a) || clk.Pending() != 0 {
		t.Fatalf("expected Stop to clear flags and pending expiries; active=%v pending=%d", tr.Active(a), clk.Pending())
	}
}

func TestTracker_DrainWithoutScheduler(t *testing.T) {
	tr := New(nil)
	a := model.SlotAddress{PartyMemberID: 0, TraitSlotID: 0}
	b := model.SlotAddress{PartyMemberID: 5, TraitSlotID: 2}

	first := tr.Mark(a)
	second := tr.Mark(b)
	third := tr.Mark(a)
	marks := tr.Drain()
	want := []Mark{{Addr: a, Seq: first}, {Addr: b, Seq: second}, {Addr: a, Seq: third}}
	if len(marks) != len(want) {
		t.Fatalf("drain: got %v want %v", marks, want)
	}
	for i := range want {
		if marks[i] != want[i] {
			t.Fatalf("drain[%d]: got %v want %v", i, marks[i], want[i])
		}
	}
	if again := tr.Drain(); len(again) != 0 {
		t.Fatalf("expected drain to reset; got %v", again)
	}

	// The owner replays each mark after the window; only the latest token per slot clears.
	for _, m := range marks {
		tr.Expire(m.Addr, m.Seq)
	}
	if tr.Active(a) || tr.Active(b) {
		t.Fatalf("expected both slots cleared")
	}

	tracked := New(schedule.NewFake())
	tracked.Mark(a)
	if got := tracked.Drain(); len(got) != 0 {
		t.Fatalf("scheduled tracker should not queue marks; got %v", got)
	}
}
