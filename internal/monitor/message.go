// Package monitor holds the connection state machine and the in-memory
// ingestion pipeline behind the topic monitor: session status tracking, the
// bounded message ledger, topic derivation and numeric series extraction.
// Everything here is presentation-agnostic; the UI consumes read-only
// snapshots and issues commands.
package monitor

// Status is the connection state owned by the Session. Exactly one value is
// active at a time and transitions happen only inside the session's
// serialized event handling.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Message is one received broker message. Seq is the arrival counter assigned
// at ingestion; it is monotonic for the lifetime of the ledger and never
// reused, so it gives consumers a stable ordering key. A Message is immutable
// once appended.
type Message struct {
	Topic   string
	Payload string
	Seq     uint64
}
