package testutil

import (
	"errors"
	"testing"
	"time"
)

// --- MockListener Tests ---

func TestNewMockListener(t *testing.T) {
	l := NewMockListener[string]("test-listener")

	if l.ID() != "test-listener" {
		t.Errorf("expected ID test-listener, got %s", l.ID())
	}
	if l.Count() != 0 {
		t.Errorf("expected 0 payloads, got %d", l.Count())
	}
	if _, ok := l.Last(); ok {
		t.Error("expected no last payload initially")
	}
}

func TestMockListener_Receive(t *testing.T) {
	l := NewMockListener[int]("test-listener")

	for i := 1; i <= 3; i++ {
		if err := l.Receive(i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	payloads := l.Payloads()
	if len(payloads) != 3 || payloads[0] != 1 || payloads[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", payloads)
	}
	if last, _ := l.Last(); last != 3 {
		t.Errorf("expected last 3, got %d", last)
	}
}

func TestMockListener_ReceiveError(t *testing.T) {
	l := NewMockListener[int]("test-listener")
	expected := errors.New("receive failed")
	l.SetReceiveError(expected)

	if err := l.Receive(1); !errors.Is(err, expected) {
		t.Errorf("expected %v, got %v", expected, err)
	}
	if l.Count() != 1 {
		t.Error("payload should be recorded even when Receive fails")
	}
}

func TestMockListener_ReceiveFunc(t *testing.T) {
	l := NewMockListener[int]("test-listener")
	l.SetReceiveError(errors.New("ignored"))

	var seen int
	l.SetReceiveFunc(func(p int) error {
		seen = p
		return nil
	})

	if err := l.Receive(7); err != nil {
		t.Errorf("receive func should take precedence, got %v", err)
	}
	if seen != 7 {
		t.Errorf("expected func to see 7, got %d", seen)
	}
}

func TestMockListener_Payloads_ReturnsCopy(t *testing.T) {
	l := NewMockListener[int]("test-listener")
	_ = l.Receive(1)

	payloads := l.Payloads()
	payloads[0] = 99

	if got := l.Payloads()[0]; got != 1 {
		t.Errorf("internal state modified through returned slice: %d", got)
	}
}

// --- Journal Tests ---

func TestJournal(t *testing.T) {
	j := NewJournal()
	a := NewMockListener[string]("a")
	b := NewMockListener[string]("b")
	a.AttachJournal(j)
	b.AttachJournal(j)

	_ = b.Receive("x")
	_ = a.Receive("x")
	_ = b.Receive("y")

	entries := j.Entries()
	if len(entries) != 3 || entries[0] != "b" || entries[1] != "a" || entries[2] != "b" {
		t.Errorf("expected [b a b], got %v", entries)
	}

	j.Reset()
	if len(j.Entries()) != 0 {
		t.Error("expected empty journal after Reset")
	}
}

// --- RecordingRecorder Tests ---

func TestRecordingRecorder(t *testing.T) {
	r := &RecordingRecorder{}

	r.ObserveCycle("r", 2, time.Millisecond, nil)
	r.ObserveCycle("r", 1, time.Millisecond, errors.New("boom"))
	r.ObserveMembership("r", 1)
	r.ObserveMembership("r", 2)

	if r.Cycles != 2 || r.Failures != 1 || r.Delivered != 3 {
		t.Errorf("unexpected counts: cycles=%d failures=%d delivered=%d", r.Cycles, r.Failures, r.Delivered)
	}
	if len(r.Memberships) != 2 || r.Memberships[1] != 2 {
		t.Errorf("expected memberships [1 2], got %v", r.Memberships)
	}
}

// --- Assert Helper Tests ---

func TestAssertHelpers(t *testing.T) {
	AssertEqual(t, 1, 1, "equal ints")
	AssertNoError(t, nil, "nil error")
	AssertContains(t, "hello world", "world", "contains")
	AssertNotContains(t, "hello world", "moon", "not contains")
}
