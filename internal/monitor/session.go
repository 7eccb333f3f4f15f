package monitor

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/saunahuone/mqttscope/pkg/mqtt"
)

// ErrAlreadyConnected is returned by Connect while a session is already
// connecting or connected. Allowing a second connect would orphan the live
// wire client, so the call is rejected outright.
var ErrAlreadyConnected = errors.New("session already connecting or connected")

// ClientFactory constructs a wire client for a broker endpoint. The session
// uses it on every Connect so tests can substitute a fake transport.
type ClientFactory func(brokerURL string, cb mqtt.Callbacks) (mqtt.Client, error)

// DefaultFactory builds paho-backed wire clients with a unique client ID per
// connection attempt.
func DefaultFactory(logger *slog.Logger) ClientFactory {
	return func(brokerURL string, cb mqtt.Callbacks) (mqtt.Client, error) {
		clientID := fmt.Sprintf("mqttscope-%s", uuid.NewString()[:8])
		return mqtt.New(brokerURL, clientID, cb, logger)
	}
}

// View is the read-only derived state handed to the presentation layer. It is
// recomputed on demand from a single consistent ledger snapshot; the
// presentation never sees the session's mutable internals.
type View struct {
	Status    Status
	BrokerURL string
	Messages  []Message // newest-first, bounded
	Topics    []string
	Selected  string
	Filtered  []Message // Messages narrowed to Selected
	Series    []Point   // oldest-first numeric series of Filtered
}

// Session owns the connection status, the active wire client and the message
// ledger. Wire client callbacks arrive on paho's goroutines and are funneled
// into a single event queue drained by one goroutine, so no two handlers ever
// interleave their mutations. Commands (Connect, Disconnect, ...) run on the
// caller's goroutine under the same mutex the queue drainer uses.
type Session struct {
	factory ClientFactory
	logger  *slog.Logger

	mu        sync.Mutex
	status    Status
	client    mqtt.Client
	gen       uint64 // bumped on every connect and disconnect
	brokerURL string
	selected  string
	ledger    *Ledger

	events    chan sessionEvent
	changed   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a disconnected session with an empty ledger and starts
// its event loop. capacity bounds the ledger; non-positive values use
// DefaultCapacity.
func NewSession(factory ClientFactory, capacity int, logger *slog.Logger) *Session {
	s := &Session{
		factory: factory,
		logger:  logger,
		status:  StatusDisconnected,
		ledger:  NewLedger(capacity),
		events:  make(chan sessionEvent, 256),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

// Connect constructs a wire client for brokerURL and begins the session.
// Construction failure is the only synchronous error path: the status stays
// disconnected and the error is returned. Network failures arrive later as
// lifecycle events.
func (s *Session) Connect(brokerURL string) error {
	s.mu.Lock()
	if s.status != StatusDisconnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}

	// A closed lifecycle event leaves the status disconnected while the old
	// client may still be retrying on its own. Replace it, don't orphan it.
	if old := s.client; old != nil {
		s.client = nil
		defer old.Teardown()
	}

	s.gen++
	gen := s.gen
	cb := mqtt.Callbacks{
		OnOpened:   func() { s.post(openedEvent{gen: gen}) },
		OnRetrying: func() { s.post(retryingEvent{gen: gen}) },
		OnClosed:   func() { s.post(closedEvent{gen: gen}) },
		OnMessage: func(topic, payload string) {
			s.post(messageEvent{gen: gen, topic: topic, payload: payload})
		},
	}

	client, err := s.factory(brokerURL, cb)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to construct wire client: %w", err)
	}

	s.client = client
	s.brokerURL = brokerURL
	s.status = StatusConnecting
	s.mu.Unlock()

	if err := client.Connect(); err != nil {
		s.mu.Lock()
		s.client = nil
		s.gen++ // orphan the failed client's events
		s.status = StatusDisconnected
		s.mu.Unlock()
		client.Teardown()
		s.notify()
		return fmt.Errorf("failed to start connection: %w", err)
	}

	s.logger.Info("Session connecting", "broker", brokerURL)
	s.notify()
	return nil
}

// Disconnect tears down the active wire client, clears the ledger and resets
// the status. With no active client it is a no-op. The teardown is
// fire-and-forget; the generation bump guarantees any event the old client
// still emits is dropped.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if s.client == nil {
		s.mu.Unlock()
		return
	}
	client := s.client
	s.client = nil
	s.gen++
	s.status = StatusDisconnected
	s.ledger.Clear()
	s.mu.Unlock()

	client.Teardown()
	s.logger.Info("Session disconnected")
	s.notify()
}

// ClearMessages empties the ledger. The topic selection is kept; a selection
// pointing at a topic with no remaining messages just yields an empty view.
func (s *Session) ClearMessages() {
	s.mu.Lock()
	s.ledger.Clear()
	s.mu.Unlock()
	s.notify()
}

// SelectTopic sets the active topic filter. An empty topic clears the
// selection and shows all messages.
func (s *Session) SelectTopic(topic string) {
	s.mu.Lock()
	s.selected = topic
	s.mu.Unlock()
	s.notify()
}

// View computes the derived read-only state from the current ledger snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.ledger.Snapshot()
	filtered := Filtered(snap, s.selected)
	return View{
		Status:    s.status,
		BrokerURL: s.brokerURL,
		Messages:  snap,
		Topics:    DistinctTopics(snap),
		Selected:  s.selected,
		Filtered:  filtered,
		Series:    ExtractSeries(filtered),
	}
}

// Status returns the current connection status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Changes returns a channel that receives a signal whenever derived state may
// have changed. Signals coalesce: a reader that re-reads View after each one
// never misses state, only intermediate frames.
func (s *Session) Changes() <-chan struct{} {
	return s.changed
}

// Close stops the event loop and tears down any active client. The session
// must not be used afterwards.
func (s *Session) Close() {
	s.Disconnect()
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Session) loop() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			s.apply(ev)
		}
	}
}

// apply performs the state transition for one event. Events run to completion
// one at a time; the generation check drops anything from a superseded
// client.
func (s *Session) apply(ev sessionEvent) {
	s.mu.Lock()
	if ev.generation() != s.gen {
		s.mu.Unlock()
		s.logger.Debug("Dropping stale wire client event", "event_gen", ev.generation(), "current_gen", s.gen)
		return
	}

	switch ev := ev.(type) {
	case openedEvent:
		s.status = StatusConnected
	case retryingEvent:
		s.status = StatusConnecting
	case closedEvent:
		s.status = StatusDisconnected
	case messageEvent:
		s.ledger.Append(ev.topic, ev.payload)
	}
	s.mu.Unlock()
	s.notify()
}

// post enqueues an event from a wire client callback. It blocks when the
// queue is full, which back-pressures paho's delivery goroutine, and bails
// out once the session is closed.
func (s *Session) post(ev sessionEvent) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}
