// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout bounds a single translation round trip to the provider
	DefaultAPITimeout = 30 * time.Second
	// DefaultCommandTimeout bounds the execution of one builtin command
	DefaultCommandTimeout = 30 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown of the web server
	DefaultShutdownTimeout = 5 * time.Second
)

// Application defaults
const (
	AppName        = "termai"
	DefaultModel   = "gemini-1.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"

	// DefaultWebHost and DefaultWebPort are the web terminal bind defaults
	DefaultWebHost = "0.0.0.0"
	DefaultWebPort = 5000
)

// Output limits
const (
	// HistoryDisplayLimit is how many history entries the history builtin shows
	HistoryDisplayLimit = 20
	// WebHistoryLimit is how many history entries the web API returns
	WebHistoryLimit = 50
	// MaxContextEntries caps the directory listing sent to the AI provider
	MaxContextEntries = 20
	// TopProcessLimit is how many processes the top builtin shows
	TopProcessLimit = 10
)
