package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/saunahuone/mqttscope/internal/monitor"
	"github.com/saunahuone/mqttscope/internal/ui"
	"github.com/saunahuone/mqttscope/pkg/config"
	"github.com/saunahuone/mqttscope/pkg/prefs"
)

func main() {
	// Load configuration with hierarchy: defaults → env → flags
	cfg := config.NewConfig()
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "mqttscope needs an interactive terminal")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	store, err := prefs.NewStore(cfg.PrefsDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Preference store error: %v\n", err)
		os.Exit(1)
	}

	// Remembered broker URL wins over the configured default; an absent
	// preference just falls back.
	brokerURL := cfg.BrokerURL
	if remembered, ok := store.Get(prefs.KeyBrokerURL); ok {
		brokerURL = remembered
	}

	logger.Info("Starting mqttscope",
		"broker", brokerURL,
		"max_message_history", cfg.MaxMessageHistory,
		"log_level", cfg.LogLevel)

	session := monitor.NewSession(monitor.DefaultFactory(logger), cfg.MaxMessageHistory, logger)
	defer session.Close()

	m := ui.NewModel(session, store, brokerURL)
	opts := []tui.ProgramOption{tui.WithInputTTY()}
	if cfg.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "UI error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("mqttscope stopped")
}

// newLogger builds the slog logger. The TUI owns the terminal, so log output
// goes to the configured file or nowhere.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeLog := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	return logger, closeLog, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
