package terminal

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewSession(t *testing.T) {
	dir := t.TempDir()
	sess, err := NewSession(dir)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if sess.WorkingDir() != dir {
		t.Errorf("WorkingDir() = %q, want %q", sess.WorkingDir(), dir)
	}
	if sess.ID() == "" {
		t.Error("ID() is empty")
	}
}

func TestNewSessionDefaultsToCwd(t *testing.T) {
	sess, err := NewSession("")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	cwd, _ := os.Getwd()
	if sess.WorkingDir() != cwd {
		t.Errorf("WorkingDir() = %q, want %q", sess.WorkingDir(), cwd)
	}
}

func TestNewSessionRejectsNonDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSession(file); err == nil {
		t.Error("expected error for non-directory initial dir")
	}
	if _, err := NewSession(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing initial dir")
	}
}

func TestChangeDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	sess, err := NewSession(root)
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.ChangeDir("sub"); err != nil {
		t.Fatalf("ChangeDir(sub): %v", err)
	}
	if sess.WorkingDir() != sub {
		t.Errorf("WorkingDir() = %q, want %q", sess.WorkingDir(), sub)
	}

	// Relative paths resolve against the new working directory
	if err := sess.ChangeDir(".."); err != nil {
		t.Fatalf("ChangeDir(..): %v", err)
	}
	if sess.WorkingDir() != root {
		t.Errorf("WorkingDir() = %q, want %q", sess.WorkingDir(), root)
	}
}

func TestChangeDirFailureLeavesStateUnchanged(t *testing.T) {
	root := t.TempDir()
	sess, err := NewSession(root)
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.ChangeDir("missing"); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if sess.WorkingDir() != root {
		t.Errorf("WorkingDir() changed after failed cd: %q", sess.WorkingDir())
	}

	file := filepath.Join(root, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := sess.ChangeDir("f.txt"); err == nil {
		t.Fatal("expected error for non-directory target")
	}
	if sess.WorkingDir() != root {
		t.Errorf("WorkingDir() changed after failed cd: %q", sess.WorkingDir())
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	sess, err := NewSession(root)
	if err != nil {
		t.Fatal(err)
	}

	if got := sess.Resolve("file.txt"); got != filepath.Join(root, "file.txt") {
		t.Errorf("Resolve(file.txt) = %q", got)
	}
	if got := sess.Resolve("/abs/path"); got != "/abs/path" {
		t.Errorf("Resolve(/abs/path) = %q", got)
	}

	home, _ := os.UserHomeDir()
	if got := sess.Resolve("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("Resolve(~/x) = %q, want %q", got, filepath.Join(home, "x"))
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	sess, err := NewSession(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sess.AppendHistory("ls")
	sess.AppendHistory("pwd")

	h := sess.History()
	h[0] = "mutated"

	if got := sess.History(); !reflect.DeepEqual(got, []string{"ls", "pwd"}) {
		t.Errorf("History() = %v, want [ls pwd]", got)
	}
}
