package mqtt

import (
	"io"
	"log/slog"
	"testing"
)

func TestNewValidatesBrokerURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "plain tcp", url: "tcp://localhost:1883", wantErr: false},
		{name: "tls", url: "ssl://broker.example:8883", wantErr: false},
		{name: "websocket", url: "ws://broker.example:8083/mqtt", wantErr: false},
		{name: "missing scheme", url: "localhost:1883", wantErr: true},
		{name: "unsupported scheme", url: "http://broker.example", wantErr: true},
		{name: "missing host", url: "tcp://", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "garbage", url: "://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.url, "test-client", Callbacks{}, logger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Fatalf("New(%q) returned nil client", tt.url)
			}
		})
	}
}
