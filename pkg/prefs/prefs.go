// Package prefs persists small user preferences (broker URL, theme) across
// sessions in a YAML file under the user config directory.
package prefs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Well-known preference keys.
const (
	KeyBrokerURL = "broker_url"
	KeyTheme     = "theme"
)

const fileName = "prefs.yaml"

// Store is a key/value preference store backed by a single YAML file. An
// absent or unreadable file is not an error: the store just starts empty and
// callers fall back to their defaults.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	values map[string]string
}

// NewStore opens the preference store rooted at dir. An empty dir resolves to
// the platform user config directory.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dir = filepath.Join(base, "mqttscope")
	}

	s := &Store{
		path:   filepath.Join(dir, fileName),
		logger: logger,
		values: make(map[string]string),
	}
	s.load()
	return s, nil
}

// Get returns the stored value for key, or ("", false) when the key is
// absent.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and rewrites the preference file atomically via
// a temp file and rename, so a crash mid-write never leaves a truncated file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preference dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp preference file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp preference file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace preference file: %w", err)
	}
	return nil
}

// load reads the preference file if present. A corrupt file degrades to an
// empty store with a warning; losing a remembered broker URL is better than
// refusing to start.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read preference file", "path", s.path, "error", err)
		}
		return
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		s.logger.Warn("Ignoring corrupt preference file", "path", s.path, "error", err)
		return
	}
	s.values = values
}
