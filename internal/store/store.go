// Package store persists the day's event slate as a single JSON file.
// The slate is read and written as a unit; writes go through a temp
// file and rename so a killed process never leaves a half-written
// slate visible.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tomasvidela/consensus-alerts/internal/event"
)

// ErrCorrupt reports that a persisted slate exists but cannot be
// deserialized. Callers treat the slate as empty; the file is kept in
// place for inspection, never deleted.
var ErrCorrupt = errors.New("corrupt slate file")

const tmpSuffix = ".tmp"

// Store owns the slate file. The monitor loop is the only writer.
type Store struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns the persisted slate, or an empty slice when no save has
// happened yet. Unreadable content wraps ErrCorrupt.
func (s *Store) Load() ([]event.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slate %s: %w", s.path, err)
	}
	var events []event.Record
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode slate %s: %w: %v", s.path, ErrCorrupt, err)
	}
	return events, nil
}

// Save overwrites the persisted slate wholesale.
func (s *Store) Save(events []event.Record) error {
	if events == nil {
		events = []event.Record{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slate: %w", err)
	}

	tmp := s.path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write slate: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit slate: %w", err)
	}
	return nil
}
