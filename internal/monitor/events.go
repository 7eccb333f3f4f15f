package monitor

// sessionEvent is implemented by every event the wire client feeds into the
// session's serialized queue. Each event carries the generation of the client
// that produced it, so events from a superseded client are dropped instead of
// mutating state that now belongs to a newer connection.
type sessionEvent interface {
	generation() uint64
}

type openedEvent struct{ gen uint64 }

type retryingEvent struct{ gen uint64 }

type closedEvent struct{ gen uint64 }

type messageEvent struct {
	gen     uint64
	topic   string
	payload string
}

func (e openedEvent) generation() uint64   { return e.gen }
func (e retryingEvent) generation() uint64 { return e.gen }
func (e closedEvent) generation() uint64   { return e.gen }
func (e messageEvent) generation() uint64  { return e.gen }
