package schedule

import (
	"testing"
	"time"
)

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	c := NewFake()
	var got []string
	c.AfterFunc(300*time.Millisecond, func() { got = append(got, "b") })
	c.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(time.Second, func() { got = append(got, "c") })

	c.Advance(500 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b] after 500ms; got %v", got)
	}
	if c.Pending() != 1 {
		t.Fatalf("expected 1 pending task; got %d", c.Pending())
	}
	c.Advance(500 * time.Millisecond)
	if len(got) != 3 {
		t.Fatalf("expected all tasks fired; got %v", got)
	}
}

func TestFake_StopPreventsCall(t *testing.T) {
	c := NewFake()
	fired := false
	task := c.AfterFunc(time.Second, func() { fired = true })
	if !task.Stop() {
		t.Fatalf("expected Stop to report a cancelled call")
	}
	if task.Stop() {
		t.Fatalf("expected second Stop to report false")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Fatalf("expected stopped task not to fire")
	}
}

func TestHandle_ArmReplacesPendingTask(t *testing.T) {
	c := NewFake()
	h := NewHandle(c)
	calls := 0
	last := ""

	h.Arm(500*time.Millisecond, func() { calls++; last = "first" })
	c.Advance(300 * time.Millisecond)
	h.Arm(500*time.Millisecond, func() { calls++; last = "second" })

	c.Advance(300 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("expected re-armed task to restart its delay; got %d calls", calls)
	}
	c.Advance(200 * time.Millisecond)
	if calls != 1 || last != "second" {
		t.Fatalf("expected exactly one call from the latest arm; got calls=%d last=%q", calls, last)
	}
}

func TestHandle_Cancel(t *testing.T) {
	c := NewFake()
	h := NewHandle(c)
	if h.Cancel() {
		t.Fatalf("expected Cancel on an idle handle to return false")
	}
	fired := false
	h.Arm(time.Second, func() { fired = true })
	if !h.Cancel() {
		t.Fatalf("expected Cancel to stop the pending task")
	}
	c.Advance(time.Second)
	if fired {
		t.Fatalf("expected cancelled task not to fire")
	}
}
