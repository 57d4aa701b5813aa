// Package safety classifies commands by risk and decides whether they
// may run without confirmation. AI-suggested commands and destructive
// builtins both pass through here before dispatch.
package safety

import (
	"regexp"
	"strings"
)

// RiskLevel represents the risk level of a command
type RiskLevel int

const (
	// Safe commands are read-only and auto-approved
	Safe RiskLevel = iota
	// NeedsConfirm commands modify state and require user confirmation
	NeedsConfirm
	// Dangerous commands are potentially destructive and blocked by default
	Dangerous
)

// String returns the wire name of the risk level
func (r RiskLevel) String() string {
	switch r {
	case Safe:
		return "safe"
	case NeedsConfirm:
		return "needs_confirm"
	case Dangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// Safe read-only commands that can be auto-executed
var safeCommands = []string{
	"ls", "cat", "pwd", "echo", "head", "tail", "grep", "find",
	"which", "whoami", "date", "wc", "sort", "uniq", "diff",
	"env", "printenv", "df", "du", "ps", "top", "free", "uptime",
	"file", "stat", "basename", "dirname", "realpath",
	"history", "help", "clear", "touch", "mkdir", "cd",
}

// destructiveCommands modify or remove user data and always require
// confirmation, even when the user typed them directly.
var destructiveCommands = []string{"rm", "rmdir", "mv", "kill"}

// Dangerous command patterns that are blocked by default
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+(-[rf]*\s+)?/\s*$`), // rm -rf / or variations
	regexp.MustCompile(`\bsudo\b`),               // Any sudo command
	regexp.MustCompile(`dd\s+if=`),
	regexp.MustCompile(`mkfs`),
	regexp.MustCompile(`:\(\)\{`), // Fork bomb
	regexp.MustCompile(`curl.*\|\s*(sh|bash|zsh)`),
	regexp.MustCompile(`wget.*\|\s*(sh|bash|zsh)`),
	regexp.MustCompile(`>\s*/dev/sd`),
	regexp.MustCompile(`chmod.*777`),
	regexp.MustCompile(`rm\s+-rf\s+[~$]`),
	regexp.MustCompile(`>\s*/etc/`),
}

// commandChainingPattern detects chaining operators which could hide
// additional commands behind a safe-looking first word
var commandChainingPattern = regexp.MustCompile(`[;&|]{1,2}`)

// Classify determines the risk level of a command line.
func Classify(cmd string) RiskLevel {
	cmd = strings.TrimSpace(cmd)

	if cmd == "" {
		return Dangerous
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(cmd) {
			return Dangerous
		}
	}

	// Chained commands could include dangerous operations after a
	// safe first word
	if commandChainingPattern.MatchString(cmd) {
		return NeedsConfirm
	}

	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return Dangerous
	}
	firstWord := fields[0]

	for _, d := range destructiveCommands {
		if firstWord == d {
			return NeedsConfirm
		}
	}

	for _, safe := range safeCommands {
		if firstWord == safe {
			return Safe
		}
	}

	// Default: needs confirmation for anything that modifies state
	return NeedsConfirm
}

// RiskDescription returns a human-readable description of the risk level
func RiskDescription(level RiskLevel) string {
	switch level {
	case Safe:
		return "Safe read-only command"
	case NeedsConfirm:
		return "Command may modify system state"
	case Dangerous:
		return "Potentially dangerous command"
	default:
		return "Unknown risk level"
	}
}
