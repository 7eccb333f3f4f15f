package prefs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(dir, logger)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestGetAbsent(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	if v, ok := s.Get(KeyBrokerURL); ok || v != "" {
		t.Errorf("Get() on empty store = (%q, %v), want (\"\", false)", v, ok)
	}
}

func TestSetGetRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	if err := s.Set(KeyBrokerURL, "tcp://broker.example:1883"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok := s.Get(KeyBrokerURL)
	if !ok || v != "tcp://broker.example:1883" {
		t.Errorf("Get() = (%q, %v)", v, ok)
	}

	// A fresh store over the same directory sees the persisted value.
	again := newTestStore(t, dir)
	v, ok = again.Get(KeyBrokerURL)
	if !ok || v != "tcp://broker.example:1883" {
		t.Errorf("Get() after reload = (%q, %v)", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := s.Get(KeyTheme); v != "light" {
		t.Errorf("Get() = %q, want light", v)
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newTestStore(t, dir)
	if _, ok := s.Get(KeyBrokerURL); ok {
		t.Error("corrupt file should yield an empty store, not values")
	}

	// The store still accepts writes afterwards.
	if err := s.Set(KeyBrokerURL, "tcp://localhost:1883"); err != nil {
		t.Errorf("Set() after corrupt load error = %v", err)
	}
}

func TestMissingDirectoryCreatedOnSet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "prefs")
	s := newTestStore(t, dir)
	if err := s.Set(KeyBrokerURL, "tcp://localhost:1883"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, fileName)); err != nil {
		t.Errorf("preference file not created: %v", err)
	}
}
