package terminal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Session holds one terminal instance's state: its working directory and the
// ordered history of accepted input lines. A Session is owned by a single
// host and is never shared across terminal instances; commands within one
// session execute strictly in submission order.
type Session struct {
	id         string
	workingDir string
	history    []string
}

// NewSession creates a session rooted at initialDir, or the process working
// directory when initialDir is empty. The directory must exist.
func NewSession(initialDir string) (*Session, error) {
	if initialDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		initialDir = cwd
	}

	abs, err := filepath.Abs(initialDir)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("create session: %s: not a directory", abs)
	}

	return &Session{id: uuid.NewString(), workingDir: abs}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// WorkingDir returns the session's current working directory. The invariant
// holds that this is always an existing, accessible directory.
func (s *Session) WorkingDir() string {
	return s.workingDir
}

// Resolve resolves path against the session's working directory. Absolute
// paths and "~"-prefixed paths are left to stand on their own.
func (s *Session) Resolve(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.workingDir, path)
}

// ChangeDir moves the session to dir after validating that it exists and is
// a directory. On failure the working directory is left unchanged.
func (s *Session) ChangeDir(dir string) error {
	target := s.Resolve(dir)
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: no such file or directory", dir)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%s: permission denied", dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}
	s.workingDir = target
	return nil
}

// AppendHistory records one accepted input line.
func (s *Session) AppendHistory(line string) {
	s.history = append(s.history, line)
}

// History returns a copy of the session's input history, oldest first.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Close releases the session. The session holds no OS resources of its own;
// hosts use Close as the point to flush persisted history.
func (s *Session) Close() {
	s.history = nil
}
