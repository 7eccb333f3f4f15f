package mqtt

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// WildcardFilter matches every topic on the broker.
const WildcardFilter = "#"

// teardownGraceMs is how long Teardown lets paho flush in-flight work.
const teardownGraceMs = 250

// wireClient implements Client on top of the Paho MQTT client.
type wireClient struct {
	client pahomqtt.Client
	cb     Callbacks
	logger *slog.Logger
}

// New constructs a client targeting brokerURL and registers the given
// callbacks. Endpoint validation happens here: a malformed URL is the only
// synchronous failure, everything network-level is reported through the
// callbacks after Connect.
func New(brokerURL, clientID string, cb Callbacks, logger *slog.Logger) (Client, error) {
	if err := validateBrokerURL(brokerURL); err != nil {
		return nil, err
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	w := &wireClient{cb: cb, logger: logger}

	opts.OnConnect = func(c pahomqtt.Client) {
		logger.Info("Connected to MQTT broker", "broker", brokerURL)
		// Subscribe from the connect handler so the wildcard subscription is
		// re-issued after every automatic reconnect.
		w.subscribeAll(c)
		if cb.OnOpened != nil {
			cb.OnOpened()
		}
	}

	opts.OnConnectionLost = func(c pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", "error", err)
		if cb.OnClosed != nil {
			cb.OnClosed()
		}
	}

	opts.OnReconnecting = func(c pahomqtt.Client, _ *pahomqtt.ClientOptions) {
		logger.Info("MQTT reconnecting", "broker", brokerURL)
		if cb.OnRetrying != nil {
			cb.OnRetrying()
		}
	}

	w.client = pahomqtt.NewClient(opts)
	return w, nil
}

// validateBrokerURL rejects endpoints paho could not dial. Paho itself only
// surfaces a bad URL when the connect attempt runs, which is too late for the
// fail-fast construction contract.
func validateBrokerURL(brokerURL string) error {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return fmt.Errorf("invalid broker URL %q: %w", brokerURL, err)
	}
	switch u.Scheme {
	case "tcp", "ssl", "tls", "mqtt", "mqtts", "ws", "wss":
	default:
		return fmt.Errorf("invalid broker URL %q: unsupported scheme %q", brokerURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid broker URL %q: missing host", brokerURL)
	}
	return nil
}

// Connect begins the broker session. Paho retries on its own schedule; the
// goroutine below only reports a terminal connect failure, which with
// connect-retry enabled means the attempt was aborted.
func (w *wireClient) Connect() error {
	w.logger.Info("Connecting to MQTT broker")

	token := w.client.Connect()
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			w.logger.Warn("MQTT connect attempt ended", "error", err)
			if w.cb.OnClosed != nil {
				w.cb.OnClosed()
			}
		}
	}()
	return nil
}

func (w *wireClient) subscribeAll(c pahomqtt.Client) {
	handler := func(_ pahomqtt.Client, msg pahomqtt.Message) {
		if w.cb.OnMessage != nil {
			w.cb.OnMessage(msg.Topic(), string(msg.Payload()))
		}
	}

	token := c.Subscribe(WildcardFilter, 0, handler)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			w.logger.Error("Failed to subscribe", "filter", WildcardFilter, "error", err)
			return
		}
		w.logger.Info("Subscribed", "filter", WildcardFilter)
	}()
}

// Teardown force-closes the session. Disconnect blocks for the grace period,
// so it runs on its own goroutine; the caller drops the handle immediately.
func (w *wireClient) Teardown() {
	w.logger.Info("Disconnecting from MQTT broker")
	go w.client.Disconnect(teardownGraceMs)
}

func (w *wireClient) IsConnected() bool {
	return w.client.IsConnected()
}
