// Package config loads application configuration from environment
// variables and an optional YAML config file. Environment variables and
// CLI flags take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"termai/internal/constants"
	"termai/internal/logging"
)

// Environment variable names
const (
	EnvAPIKeys  = "GEMINI_API_KEYS"
	EnvAPIKey   = "GEMINI_API_KEY"
	EnvModel    = "TERMAI_MODEL"
	EnvBaseURL  = "TERMAI_BASE_URL"
	EnvLogLevel = "TERMAI_LOG_LEVEL"
	EnvWebHost  = "TERMAI_WEB_HOST"
	EnvWebPort  = "TERMAI_WEB_PORT"
)

// Errors
var (
	ErrNoAvailableKeys = errors.New("all API keys exhausted")
	ErrInvalidPort     = errors.New("web port must be between 1 and 65535")
)

// RotatableErrorCodes are status codes that should trigger key rotation
var RotatableErrorCodes = []int{401, 403, 429}

// KeyRotator manages a pool of API keys with rotation support
type KeyRotator struct {
	keys       []string
	currentIdx int
	currentKey string
}

// NewKeyRotator creates a KeyRotator from a list of keys
func NewKeyRotator(keys []string) *KeyRotator {
	kr := &KeyRotator{keys: keys}
	if len(keys) > 0 {
		kr.currentKey = keys[0]
	}
	return kr
}

// GetCurrentKey returns the current active API key
func (kr *KeyRotator) GetCurrentKey() string {
	return kr.currentKey
}

// GetKeyCount returns the total number of keys
func (kr *KeyRotator) GetKeyCount() int {
	return len(kr.keys)
}

// GetCurrentIndex returns the current key index (0-based)
func (kr *KeyRotator) GetCurrentIndex() int {
	return kr.currentIdx
}

// HasKeys returns true if there are any keys configured
func (kr *KeyRotator) HasKeys() bool {
	return len(kr.keys) > 0
}

// Rotate moves to the next available API key
func (kr *KeyRotator) Rotate() (string, error) {
	if kr.currentIdx+1 >= len(kr.keys) {
		return "", ErrNoAvailableKeys
	}
	kr.currentIdx++
	kr.currentKey = kr.keys[kr.currentIdx]
	return kr.currentKey, nil
}

// WebConfig holds the web terminal listener settings
type WebConfig struct {
	Host string
	Port int
}

// Config holds the application configuration
type Config struct {
	// AI provider settings
	Model   string
	BaseURL string
	// APIKey, when set by a flag, takes precedence over environment keys
	APIKey string
	Keys   *KeyRotator

	// Logging
	Debug    bool
	LogLevel logging.Level

	// Web terminal
	Web WebConfig

	// Log level from the config file, applied only when the
	// environment does not set one
	fileLogLevel string
}

// NewConfig creates a Config with zero values; call Validate to
// populate it from the file and environment.
func NewConfig() *Config {
	return &Config{}
}

// Validate loads configuration from the environment and the config
// file and fills in defaults. Precedence: flags, then environment,
// then the file, then built-in defaults.
func (c *Config) Validate() error {
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.Keys == nil || !c.Keys.HasKeys() {
		if key := strings.TrimSpace(c.APIKey); key != "" {
			c.Keys = NewKeyRotator([]string{key})
		} else {
			c.Keys = NewKeyRotator(keysFromEnv())
		}
	}
	if c.Web.Host == "" {
		c.Web.Host = os.Getenv(EnvWebHost)
	}
	if port := os.Getenv(EnvWebPort); port != "" && c.Web.Port == 0 {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err != nil {
			return fmt.Errorf("invalid %s: %q", EnvWebPort, port)
		}
		c.Web.Port = p
	}

	// Errors loading the config file are silently ignored - env vars
	// and flags take precedence
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}

	if c.Model == "" {
		c.Model = constants.DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	level := logging.LevelWarn
	if c.fileLogLevel != "" {
		level = logging.ParseLevel(c.fileLogLevel)
	}
	if s := os.Getenv(EnvLogLevel); s != "" {
		level = logging.ParseLevel(s)
	}
	if c.Debug {
		level = logging.LevelDebug
	}
	c.LogLevel = level

	if c.Web.Host == "" {
		c.Web.Host = constants.DefaultWebHost
	}
	if c.Web.Port == 0 {
		c.Web.Port = constants.DefaultWebPort
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return ErrInvalidPort
	}

	return nil
}

// AIEnabled reports whether at least one API key is configured. The
// terminal works without any, only natural-language translation is off.
func (c *Config) AIEnabled() bool {
	return c.Keys != nil && c.Keys.HasKeys()
}

// WebAddr returns the host:port pair for the web listener.
func (c *Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// keysFromEnv reads API keys from GEMINI_API_KEYS (comma-separated) or
// the singular GEMINI_API_KEY.
func keysFromEnv() []string {
	raw := os.Getenv(EnvAPIKeys)
	if raw == "" {
		raw = os.Getenv(EnvAPIKey)
	}
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
