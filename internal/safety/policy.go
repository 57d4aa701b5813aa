package safety

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"termai/internal/constants"
)

// RulesFile is the name of the persisted safety rules file
const RulesFile = "safety.json"

// Rules holds allow and deny patterns. Deny always takes precedence.
type Rules struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// persisted is the on-disk shape of the policy
type persisted struct {
	Rules            Rules `json:"rules"`
	AutoAllowSafe    bool  `json:"auto_allow_safe"`
	DangerousEnabled bool  `json:"dangerous_enabled"`
}

// Decision is the outcome of a policy check
type Decision int

const (
	// AutoAllow means the command may run without asking
	AutoAllow Decision = iota
	// AskConfirm means the user must confirm before the command runs
	AskConfirm
	// Block means the command must not run
	Block
)

// Policy decides whether a command may run. It combines the static
// risk classifier with persisted allow/deny rules and a session-only
// allowlist. Safe for concurrent use.
type Policy struct {
	mu               sync.RWMutex
	rules            Rules
	autoAllowSafe    bool
	dangerousEnabled bool
	sessionAllow     map[string]bool
	matcher          *PatternMatcher
	path             string
}

// NewPolicy creates a Policy with safe defaults and no persisted rules.
func NewPolicy() *Policy {
	return &Policy{
		autoAllowSafe: true,
		sessionAllow:  make(map[string]bool),
		matcher:       NewPatternMatcher(),
	}
}

// Load reads persisted rules from the data directory. A missing file
// leaves the defaults in place.
func (p *Policy) Load() error {
	path, err := rulesPath()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var saved persisted
	if err := json.Unmarshal(data, &saved); err != nil {
		return err
	}
	p.rules = saved.Rules
	p.autoAllowSafe = saved.AutoAllowSafe
	p.dangerousEnabled = saved.DangerousEnabled
	return nil
}

// Save writes the current rules to the data directory.
func (p *Policy) Save() error {
	p.mu.RLock()
	saved := persisted{
		Rules:            p.rules,
		AutoAllowSafe:    p.autoAllowSafe,
		DangerousEnabled: p.dangerousEnabled,
	}
	path := p.path
	p.mu.RUnlock()

	if path == "" {
		var err error
		path, err = rulesPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Decide returns what should happen to a command before dispatch.
// Precedence: deny rules, then dangerous classification, then allow
// rules and the session allowlist, then the risk level.
func (p *Policy) Decide(command string) Decision {
	p.mu.RLock()
	defer p.mu.RUnlock()

	switch p.matcher.CheckPermission(command, p.rules) {
	case Deny:
		return Block
	case Allow:
		return AutoAllow
	}

	level := Classify(command)
	if level == Dangerous {
		if p.dangerousEnabled {
			return AskConfirm
		}
		return Block
	}

	if p.sessionAllow[command] {
		return AutoAllow
	}

	if level == Safe && p.autoAllowSafe {
		return AutoAllow
	}
	return AskConfirm
}

// AllowForSession marks a command as allowed until the process exits.
func (p *Policy) AllowForSession(command string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessionAllow[command] = true
}

// AddAllowRule adds a persistent allow pattern.
func (p *Policy) AddAllowRule(pattern string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules.Allow = append(p.rules.Allow, pattern)
}

// AddDenyRule adds a persistent deny pattern.
func (p *Policy) AddDenyRule(pattern string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules.Deny = append(p.rules.Deny, pattern)
}

// SetDangerousEnabled controls whether dangerous commands may run with
// confirmation instead of being blocked.
func (p *Policy) SetDangerousEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dangerousEnabled = enabled
}

// rulesPath returns the path to the persisted rules, honoring
// XDG_DATA_HOME.
func rulesPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, constants.AppName, RulesFile), nil
}
