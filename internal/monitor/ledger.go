package monitor

import "sync"

// DefaultCapacity bounds the ledger when no explicit capacity is configured.
// Eviction at this bound is the only thing standing between a busy broker and
// unbounded memory growth, so the ledger never grows past it.
const DefaultCapacity = 100

// Ledger is a capacity-bounded buffer of the most recent messages. Appends
// write into a circular slot array, so pushing the 101st message costs the
// same as the first; snapshots read newest-first. A mutex rather than
// per-slot atomics keeps Clear atomic with respect to concurrent appends.
type Ledger struct {
	mu       sync.Mutex
	slots    []Message
	next     int // slot the next append writes to
	size     int
	capacity int
	seq      uint64 // total messages ever appended
}

// NewLedger allocates a ledger retaining at most capacity messages.
// Non-positive capacities fall back to DefaultCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		slots:    make([]Message, capacity),
		capacity: capacity,
	}
}

// Append records a message, assigning it the next sequence number. When the
// ledger is full the oldest entry is overwritten.
func (l *Ledger) Append(topic, payload string) Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	msg := Message{Topic: topic, Payload: payload, Seq: l.seq}
	l.slots[l.next] = msg
	l.next = (l.next + 1) % l.capacity
	if l.size < l.capacity {
		l.size++
	}
	return msg
}

// Clear empties the ledger in one step. Sequence numbers keep counting from
// where they left off so entries from before and after a clear never collide.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.size = 0
	l.next = 0
}

// Snapshot returns the retained messages newest-first. The returned slice is
// a copy taken under the lock, so it reflects a single consistent point in
// time and is safe to hold across later appends.
func (l *Ledger) Snapshot() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Message, 0, l.size)
	for i := 1; i <= l.size; i++ {
		idx := (l.next - i + l.capacity) % l.capacity
		out = append(out, l.slots[idx])
	}
	return out
}

// Len reports how many messages are currently retained.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}
