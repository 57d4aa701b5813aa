package terminal

import (
	"fmt"
	"strings"
	"time"
)

// Exit codes exposed to hosts
const (
	// ExitOK indicates success
	ExitOK = 0
	// ExitFailure indicates a generic handler failure
	ExitFailure = 1
	// ExitUsage indicates an input or syntax error
	ExitUsage = 2
	// ExitNotFound indicates an unknown command, mirroring the shell convention
	ExitNotFound = 127
)

// Result is the uniform outcome of dispatching one input line.
// Invariant: ExitCode 0 implies Stderr is empty; a non-zero ExitCode implies
// Stderr is non-empty and explains the failure.
type Result struct {
	ExitCode int
	Stdout   []string
	Stderr   []string

	// Duration is attached by the Dispatcher; handlers leave it zero.
	Duration time.Duration
}

// OK returns a success Result with the given stdout lines.
func OK(lines ...string) Result {
	return Result{ExitCode: ExitOK, Stdout: lines}
}

// Failf returns a failure Result with a single formatted stderr line.
func Failf(code int, format string, args ...interface{}) Result {
	if code == ExitOK {
		code = ExitFailure
	}
	return Result{ExitCode: code, Stderr: []string{fmt.Sprintf(format, args...)}}
}

// Failed reports whether the command failed.
func (r Result) Failed() bool {
	return r.ExitCode != ExitOK
}

// Output joins stdout lines with newlines.
func (r Result) Output() string {
	return strings.Join(r.Stdout, "\n")
}

// ErrorOutput joins stderr lines with newlines.
func (r Result) ErrorOutput() string {
	return strings.Join(r.Stderr, "\n")
}

// Combined joins stdout followed by stderr, the shape hosts print.
func (r Result) Combined() string {
	parts := make([]string, 0, len(r.Stdout)+len(r.Stderr))
	parts = append(parts, r.Stdout...)
	parts = append(parts, r.Stderr...)
	return strings.Join(parts, "\n")
}
