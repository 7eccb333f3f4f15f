package monitor

import (
	"fmt"
	"testing"
)

func TestLedgerNewestFirst(t *testing.T) {
	l := NewLedger(10)
	l.Append("sensors/temp", "1")
	l.Append("sensors/temp", "2")
	l.Append("sensors/hum", "3")

	snap := l.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Snapshot() length = %d, want 3", len(snap))
	}
	if snap[0].Payload != "3" || snap[1].Payload != "2" || snap[2].Payload != "1" {
		t.Errorf("Snapshot() order = %v, want newest-first", snap)
	}
	for i, m := range snap {
		wantSeq := uint64(3 - i)
		if m.Seq != wantSeq {
			t.Errorf("Snapshot()[%d].Seq = %d, want %d", i, m.Seq, wantSeq)
		}
	}
}

func TestLedgerBoundedLength(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		appends  int
		wantLen  int
	}{
		{name: "under capacity", capacity: 100, appends: 5, wantLen: 5},
		{name: "exactly capacity", capacity: 100, appends: 100, wantLen: 100},
		{name: "over capacity", capacity: 100, appends: 250, wantLen: 100},
		{name: "zero appends", capacity: 100, appends: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(tt.capacity)
			for i := 0; i < tt.appends; i++ {
				l.Append("t", fmt.Sprint(i))
			}
			if got := l.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
			if got := len(l.Snapshot()); got != tt.wantLen {
				t.Errorf("len(Snapshot()) = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestLedgerEvictsSingleOldest(t *testing.T) {
	l := NewLedger(100)
	for i := 1; i <= 101; i++ {
		l.Append("t", fmt.Sprint(i))
	}

	snap := l.Snapshot()
	if len(snap) != 100 {
		t.Fatalf("len(Snapshot()) = %d, want 100", len(snap))
	}
	if snap[0].Seq != 101 {
		t.Errorf("head Seq = %d, want 101", snap[0].Seq)
	}
	if tail := snap[len(snap)-1]; tail.Seq != 2 {
		t.Errorf("tail Seq = %d, want 2 (seq 1 must be evicted)", tail.Seq)
	}
}

func TestLedgerClear(t *testing.T) {
	l := NewLedger(10)
	l.Append("t", "1")
	l.Append("t", "2")

	l.Clear()
	if got := l.Len(); got != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", got)
	}

	// Sequence numbers continue across a clear; they are never reused.
	msg := l.Append("t", "3")
	if msg.Seq != 3 {
		t.Errorf("Seq after Clear = %d, want 3", msg.Seq)
	}
}

func TestLedgerSnapshotIsolated(t *testing.T) {
	l := NewLedger(10)
	l.Append("t", "1")
	snap := l.Snapshot()

	l.Append("t", "2")
	l.Clear()

	if len(snap) != 1 || snap[0].Payload != "1" {
		t.Errorf("earlier snapshot mutated by later appends: %v", snap)
	}
}

func TestLedgerDefaultCapacity(t *testing.T) {
	l := NewLedger(0)
	for i := 0; i < DefaultCapacity+20; i++ {
		l.Append("t", "x")
	}
	if got := l.Len(); got != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", got, DefaultCapacity)
	}
}
