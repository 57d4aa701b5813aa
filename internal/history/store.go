// Package history provides command history persistence across sessions.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"termai/internal/constants"
)

// HistoryFile is the name of the on-disk history file
const HistoryFile = "history.json"

// Entry is one executed command line
type Entry struct {
	SessionID string    `json:"session_id"`
	Line      string    `json:"line"`
	At        time.Time `json:"at"`
}

// Recorder is the interface session hosts use to persist history.
type Recorder interface {
	// Load reads the history from disk
	Load() error

	// Save writes the history to disk
	Save() error

	// Append records a command line
	Append(sessionID, line string)

	// Recent returns the n most recent entries, oldest first
	Recent(n int) []Entry

	// Lines returns every recorded line, oldest first
	Lines() []string

	// Clear removes all recorded history
	Clear()
}

var _ Recorder = (*Store)(nil)

// Store is a JSON-file backed Recorder. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	path    string
}

// NewStore creates a Store persisting to the default data directory.
func NewStore() (*Store, error) {
	path, err := historyPath()
	if err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// NewStoreAt creates a Store persisting to an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads the history file. A missing file is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// Save writes the history file, creating the directory if needed.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Append records a command line with the current timestamp.
func (s *Store) Append(sessionID, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{
		SessionID: sessionID,
		Line:      line,
		At:        time.Now(),
	})
}

// Recent returns the n most recent entries, oldest first.
func (s *Store) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if len(s.entries) > n {
		start = len(s.entries) - n
	}
	out := make([]Entry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// Lines returns every recorded line, oldest first.
func (s *Store) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, len(s.entries))
	for i, e := range s.entries {
		lines[i] = e.Line
	}
	return lines
}

// Clear removes all recorded history.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// historyPath returns the default history location, honoring
// XDG_DATA_HOME.
func historyPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, constants.AppName, HistoryFile), nil
}
