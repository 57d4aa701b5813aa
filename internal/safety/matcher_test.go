package safety

import "testing"

func TestPatternMatcher_Match(t *testing.T) {
	pm := NewPatternMatcher()

	tests := []struct {
		name     string
		command  string
		pattern  string
		expected bool
	}{
		// Exact match
		{"exact match", "ls -la", "ls -la", true},
		{"exact match single word", "ls", "ls", true},

		// Colon-style patterns
		{"git:* matches git status", "git status", "git:*", true},
		{"git:* matches git commit", "git commit -m 'test'", "git:*", true},
		{"git:* doesn't match gitignore", "gitignore", "git:*", false},
		{"git:* matches just git", "git", "git:*", true},
		{"rm:-rf matches rm -rf build", "rm -rf build", "rm:-rf", true},
		{"npm:run doesn't match npm install", "npm install", "npm:run", false},

		// Glob patterns with *
		{"glob prefix", "npm run test", "npm run *", true},
		{"glob prefix no match", "npm install", "npm run *", false},
		{"glob suffix", "test.go", "*.go", true},
		{"glob middle", "file-test-123", "file-*-123", true},

		// Prefix match (implicit)
		{"prefix match", "ls -la --color", "ls", true},
		{"prefix no match different command", "lsof", "ls", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pm.Match(tt.command, tt.pattern)
			if result != tt.expected {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.command, tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestPatternMatcher_CheckPermission(t *testing.T) {
	pm := NewPatternMatcher()

	tests := []struct {
		name     string
		command  string
		rules    Rules
		expected MatchResult
	}{
		{
			name:    "deny takes precedence",
			command: "rm -rf /tmp/test",
			rules: Rules{
				Allow: []string{"rm:*"},
				Deny:  []string{"rm -rf *"},
			},
			expected: Deny,
		},
		{
			name:    "allow when no deny match",
			command: "git status",
			rules: Rules{
				Allow: []string{"git:*"},
				Deny:  []string{"rm:*"},
			},
			expected: Allow,
		},
		{
			name:     "no match",
			command:  "docker ps",
			rules:    Rules{Allow: []string{"git:*"}, Deny: []string{"rm:*"}},
			expected: NoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pm.CheckPermission(tt.command, tt.rules)
			if result != tt.expected {
				t.Errorf("CheckPermission(%q) = %v, want %v", tt.command, result, tt.expected)
			}
		})
	}
}
