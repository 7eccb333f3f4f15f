package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// Config holds the monitor's configuration. Values are layered: defaults from
// NewConfig, then MQTTSCOPE_* environment variables, then command-line flags.
type Config struct {
	// Broker configuration
	BrokerURL string

	// Ledger configuration
	MaxMessageHistory int

	// UI configuration
	AltScreen bool

	// Logging configuration. The TUI owns stdout, so logs go to a file when
	// one is configured and are discarded otherwise.
	LogLevel string
	LogFile  string

	// PrefsDir overrides where the preference file lives. Empty means the
	// user config directory.
	PrefsDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BrokerURL:         "tcp://localhost:1883",
		MaxMessageHistory: 100,
		AltScreen:         true,
		LogLevel:          "info",
		LogFile:           "",
		PrefsDir:          "",
	}
}

// LoadFromEnv loads configuration from environment variables with the
// MQTTSCOPE_ prefix.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("MQTTSCOPE_BROKER_URL"); v != "" {
		c.BrokerURL = v
	}
	if v := os.Getenv("MQTTSCOPE_MAX_MESSAGE_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxMessageHistory = n
		}
	}
	if v := os.Getenv("MQTTSCOPE_ALT_SCREEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AltScreen = b
		}
	}
	if v := os.Getenv("MQTTSCOPE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MQTTSCOPE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("MQTTSCOPE_CONFIG_DIR"); v != "" {
		c.PrefsDir = v
	}
}

// LoadFromFlags parses command-line flags and overrides config values.
func (c *Config) LoadFromFlags() {
	pflag.StringVar(&c.BrokerURL, "broker-url", c.BrokerURL, "MQTT broker URL (tcp://host:port)")
	pflag.IntVar(&c.MaxMessageHistory, "max-message-history", c.MaxMessageHistory, "Maximum messages retained in the ledger")
	pflag.BoolVar(&c.AltScreen, "alt-screen", c.AltScreen, "Use the terminal alternate screen buffer")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	pflag.StringVar(&c.LogFile, "log-file", c.LogFile, "Write logs to this file (empty discards logs)")
	pflag.StringVar(&c.PrefsDir, "config-dir", c.PrefsDir, "Directory for the preference file")

	pflag.Parse()
}

// Validate checks that required configuration values are set and well-formed.
func (c *Config) Validate() error {
	if c.BrokerURL == "" {
		return fmt.Errorf("broker URL is required")
	}
	if _, err := url.Parse(c.BrokerURL); err != nil {
		return fmt.Errorf("invalid broker URL: %w", err)
	}
	if c.MaxMessageHistory < 1 {
		return fmt.Errorf("max message history must be >= 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
