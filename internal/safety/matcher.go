package safety

import (
	"regexp"
	"strings"
)

// MatchResult represents the result of permission matching
type MatchResult int

const (
	// NoMatch indicates no matching rule was found
	NoMatch MatchResult = iota
	// Allow indicates the command matches an allow rule
	Allow
	// Deny indicates the command matches a deny rule
	Deny
)

// PatternMatcher handles glob/wildcard pattern matching for permissions
type PatternMatcher struct{}

// NewPatternMatcher creates a new pattern matcher
func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{}
}

// Match checks if a command matches a permission pattern.
// Patterns support:
//   - Exact match: "ls -la"
//   - Colon wildcard: "git:*" matches "git status", "git commit", etc.
//   - Glob wildcard: "rm -rf *"
//   - Prefix match: "npm run" matches "npm run test", "npm run build"
func (pm *PatternMatcher) Match(command, pattern string) bool {
	command = strings.TrimSpace(command)
	pattern = strings.TrimSpace(pattern)

	if pattern == command {
		return true
	}

	// Colon-style patterns: "git:*" means "git " + anything
	if strings.Contains(pattern, ":") {
		return pm.matchColonPattern(command, pattern)
	}

	if strings.Contains(pattern, "*") {
		return pm.matchGlobPattern(command, pattern)
	}

	// Prefix match (pattern without wildcard matches command prefix)
	return strings.HasPrefix(command, pattern+" ")
}

// matchColonPattern matches patterns like "git:*", "npm:*".
// "git:*" matches any command starting with "git " (note the space),
// "git:status" matches exactly "git status".
func (pm *PatternMatcher) matchColonPattern(command, pattern string) bool {
	parts := strings.SplitN(pattern, ":", 2)
	if len(parts) != 2 {
		return false
	}

	prefix := parts[0]
	suffix := parts[1]

	if !strings.HasPrefix(command, prefix+" ") && command != prefix {
		return false
	}

	rest := strings.TrimPrefix(command, prefix)
	rest = strings.TrimPrefix(rest, " ")

	if suffix == "*" {
		return true
	}

	if strings.Contains(suffix, "*") {
		return pm.matchGlobPattern(rest, suffix)
	}

	cmdParts := strings.Fields(rest)
	if len(cmdParts) > 0 && cmdParts[0] == suffix {
		return true
	}

	return rest == suffix
}

// matchGlobPattern matches patterns with * wildcards by converting the
// glob to an anchored regex
func (pm *PatternMatcher) matchGlobPattern(command, pattern string) bool {
	regexPattern := regexp.QuoteMeta(pattern)
	regexPattern = strings.ReplaceAll(regexPattern, `\*`, `.*`)
	regexPattern = "^" + regexPattern + "$"

	re, err := regexp.Compile(regexPattern)
	if err != nil {
		return false
	}

	return re.MatchString(command)
}

// MatchRules checks a command against a list of patterns
func (pm *PatternMatcher) MatchRules(command string, patterns []string) bool {
	for _, p := range patterns {
		if pm.Match(command, p) {
			return true
		}
	}
	return false
}

// CheckPermission checks a command against allow and deny rules.
// Deny rules take precedence over allow rules.
func (pm *PatternMatcher) CheckPermission(command string, rules Rules) MatchResult {
	if pm.MatchRules(command, rules.Deny) {
		return Deny
	}
	if pm.MatchRules(command, rules.Allow) {
		return Allow
	}
	return NoMatch
}
