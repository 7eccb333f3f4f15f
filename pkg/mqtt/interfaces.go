package mqtt

// Client is the narrow surface the monitor core needs from the wire-protocol
// client. The paho implementation behind it owns socket framing, keepalive
// and reconnect timing; the core only issues commands and reacts to the
// callbacks it registered at construction time.
type Client interface {
	// Connect begins establishing the broker session. The call returns once
	// the attempt is underway; success and failure arrive asynchronously
	// through the Callbacks.
	Connect() error

	// Teardown forcibly closes the session. It never blocks on broker
	// acknowledgment and the client must not be reused afterwards.
	Teardown()

	// IsConnected reports whether the underlying transport is currently up.
	IsConnected() bool
}

// Callbacks carries the lifecycle and message handlers a client invokes.
// Nil handlers are skipped.
type Callbacks struct {
	// OnOpened fires when the broker session is established, including after
	// an automatic reconnect.
	OnOpened func()

	// OnRetrying fires when the transport lost the session and is attempting
	// to re-establish it.
	OnRetrying func()

	// OnClosed fires when the session is lost or torn down.
	OnClosed func()

	// OnMessage fires for every message received on the wildcard subscription.
	OnMessage func(topic, payload string)
}
