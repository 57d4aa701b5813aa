package safety

import (
	"testing"
)

func TestPolicyDecideDefaults(t *testing.T) {
	p := NewPolicy()

	tests := []struct {
		name     string
		command  string
		expected Decision
	}{
		{"safe auto-allowed", "ls -la", AutoAllow},
		{"destructive asks", "rm file.txt", AskConfirm},
		{"unknown asks", "deploy --prod", AskConfirm},
		{"dangerous blocked", "sudo rm -rf /", Block},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Decide(tt.command); got != tt.expected {
				t.Errorf("Decide(%q) = %v, want %v", tt.command, got, tt.expected)
			}
		})
	}
}

func TestPolicyDenyRuleWins(t *testing.T) {
	p := NewPolicy()
	p.AddDenyRule("ls:*")

	if got := p.Decide("ls -la"); got != Block {
		t.Errorf("Decide(ls -la) = %v, want Block despite safe classification", got)
	}
}

func TestPolicyAllowRule(t *testing.T) {
	p := NewPolicy()
	p.AddAllowRule("rm -rf build")

	if got := p.Decide("rm -rf build"); got != AutoAllow {
		t.Errorf("Decide = %v, want AutoAllow from rule", got)
	}
	if got := p.Decide("rm -rf other"); got != AskConfirm {
		t.Errorf("Decide = %v, want AskConfirm without rule", got)
	}
}

func TestPolicySessionAllowlist(t *testing.T) {
	p := NewPolicy()

	if got := p.Decide("mv a b"); got != AskConfirm {
		t.Fatalf("Decide = %v, want AskConfirm before session allow", got)
	}
	p.AllowForSession("mv a b")
	if got := p.Decide("mv a b"); got != AutoAllow {
		t.Errorf("Decide = %v, want AutoAllow after session allow", got)
	}
	// Only the exact line is allowed
	if got := p.Decide("mv a c"); got != AskConfirm {
		t.Errorf("Decide = %v, want AskConfirm for different line", got)
	}
}

func TestPolicyDangerousEnabled(t *testing.T) {
	p := NewPolicy()
	p.SetDangerousEnabled(true)

	if got := p.Decide("sudo ls"); got != AskConfirm {
		t.Errorf("Decide = %v, want AskConfirm when dangerous enabled", got)
	}
}

func TestPolicyPersistence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	p := NewPolicy()
	if err := p.Load(); err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	p.AddAllowRule("git:*")
	p.AddDenyRule("rm -rf *")
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewPolicy()
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.Decide("git status"); got != AutoAllow {
		t.Errorf("Decide(git status) = %v after reload, want AutoAllow", got)
	}
	if got := reloaded.Decide("rm -rf build"); got != Block {
		t.Errorf("Decide(rm -rf build) = %v after reload, want Block", got)
	}
}
