package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"termai/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	Model   string   `yaml:"model,omitempty"`
	BaseURL string   `yaml:"base_url,omitempty"`
	APIKeys []string `yaml:"api_keys,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`

	Web *WebFileConfig `yaml:"web,omitempty"`
}

// WebFileConfig holds web terminal settings from the config file
type WebFileConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from the first config
// file found on the search path. A missing file is not an error.
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}
	return &FileConfig{}, nil
}

func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}
	if c.BaseURL == "" && fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if (c.Keys == nil || !c.Keys.HasKeys()) && len(fc.APIKeys) > 0 {
		c.Keys = NewKeyRotator(fc.APIKeys)
	}
	if fc.LogLevel != "" {
		c.fileLogLevel = fc.LogLevel
	}
	if fc.Web != nil {
		if c.Web.Host == "" && fc.Web.Host != "" {
			c.Web.Host = fc.Web.Host
		}
		if c.Web.Port == 0 && fc.Web.Port != 0 {
			c.Web.Port = fc.Web.Port
		}
	}
}

// CreateDefaultConfigFile writes a commented sample config file to the
// user config directory. It refuses to overwrite an existing file.
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# termai configuration
# Location: ~/.config/termai/config.yaml

# Model used for natural-language translation
# model: gemini-1.5-flash

# OpenAI-compatible chat completions endpoint
# base_url: https://generativelanguage.googleapis.com/v1beta/openai/chat/completions

# API keys (rotated on rate-limit or auth errors)
# api_keys:
#   - your-api-key

# Log level: debug, info, warn, error, none
# log_level: warn

# Web terminal listener
# web:
#   host: 0.0.0.0
#   port: 5000
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
