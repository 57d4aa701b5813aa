package terminal

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func testDispatcher(t *testing.T) (*Dispatcher, *Session) {
	t.Helper()

	reg := NewRegistry()
	reg.MustRegister("ok", HandlerFunc(func(ctx context.Context, args []string, sess *Session) Result {
		return OK("ran with " + strings.Join(args, ","))
	}))
	reg.MustRegister("fail", HandlerFunc(func(ctx context.Context, args []string, sess *Session) Result {
		return Failf(ExitFailure, "it broke")
	}))
	reg.MustRegister("boom", HandlerFunc(func(ctx context.Context, args []string, sess *Session) Result {
		panic("kaboom")
	}))
	reg.MustRegister("ls", HandlerFunc(func(ctx context.Context, args []string, sess *Session) Result {
		return OK(strings.Join(args, " "))
	}))
	reg.MustRegister("history", HandlerFunc(func(ctx context.Context, args []string, sess *Session) Result {
		return OK(sess.History()...)
	}))

	sess, err := NewSession(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewDispatcher(reg), sess
}

func TestDispatchSuccess(t *testing.T) {
	d, sess := testDispatcher(t)

	res := d.Dispatch(context.Background(), "ok a b", sess)
	if res.ExitCode != ExitOK {
		t.Fatalf("ExitCode = %d, want 0", res.ExitCode)
	}
	if len(res.Stderr) != 0 {
		t.Errorf("Stderr = %v, want empty on success", res.Stderr)
	}
	if res.Output() != "ran with a,b" {
		t.Errorf("Output() = %q", res.Output())
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, sess := testDispatcher(t)

	res := d.Dispatch(context.Background(), "nosuch", sess)
	if res.ExitCode != ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitNotFound)
	}
	if len(res.Stderr) == 0 || !strings.Contains(res.Stderr[0], "command not found: nosuch") {
		t.Errorf("Stderr = %v, want command-not-found message", res.Stderr)
	}
	// Failed lookups still land in history
	if got := sess.History(); !reflect.DeepEqual(got, []string{"nosuch"}) {
		t.Errorf("History() = %v, want [nosuch]", got)
	}
}

func TestDispatchBlankIsNoOp(t *testing.T) {
	d, sess := testDispatcher(t)

	for _, raw := range []string{"", "   ", "\t"} {
		res := d.Dispatch(context.Background(), raw, sess)
		if res.ExitCode != ExitOK || len(res.Stdout) != 0 || len(res.Stderr) != 0 {
			t.Errorf("Dispatch(%q) = %+v, want empty success", raw, res)
		}
	}
	if got := sess.History(); len(got) != 0 {
		t.Errorf("blank input must not be recorded, History() = %v", got)
	}
}

func TestDispatchSyntaxError(t *testing.T) {
	d, sess := testDispatcher(t)

	res := d.Dispatch(context.Background(), `ok "unclosed`, sess)
	if res.ExitCode != ExitUsage {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitUsage)
	}
	if len(res.Stderr) == 0 {
		t.Error("syntax errors must explain themselves on stderr")
	}
}

func TestDispatchHistoryOrder(t *testing.T) {
	d, sess := testDispatcher(t)

	lines := []string{"ok one", "fail", "nosuch thing"}
	for _, l := range lines {
		d.Dispatch(context.Background(), l, sess)
	}

	if got := sess.History(); !reflect.DeepEqual(got, lines) {
		t.Errorf("History() = %v, want %v (submission order, failures included)", got, lines)
	}
}

func TestDispatchHistoryRecordsRawLine(t *testing.T) {
	d, sess := testDispatcher(t)

	// Aliases expand for execution but history keeps what was typed
	res := d.Dispatch(context.Background(), "ll /tmp", sess)
	if res.ExitCode != ExitOK {
		t.Fatalf("ExitCode = %d: %v", res.ExitCode, res.Stderr)
	}
	if res.Output() != "-la /tmp" {
		t.Errorf("alias expansion: Output() = %q, want %q", res.Output(), "-la /tmp")
	}
	if got := sess.History(); !reflect.DeepEqual(got, []string{"ll /tmp"}) {
		t.Errorf("History() = %v, want the raw line", got)
	}
}

func TestDispatchAliasExpandsOnce(t *testing.T) {
	d, _ := testDispatcher(t)

	if got := d.ExpandAlias("h"); got != "history" {
		t.Errorf("ExpandAlias(h) = %q", got)
	}
	// Only the first token is alias material
	if got := d.ExpandAlias("ok h"); got != "ok h" {
		t.Errorf("ExpandAlias(ok h) = %q, want unchanged", got)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	d, sess := testDispatcher(t)

	res := d.Dispatch(context.Background(), "boom", sess)
	if res.ExitCode != ExitFailure {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitFailure)
	}
	if len(res.Stderr) == 0 || !strings.Contains(res.Stderr[0], "internal error") {
		t.Errorf("Stderr = %v, want internal error message", res.Stderr)
	}

	// The session must remain usable
	res = d.Dispatch(context.Background(), "ok after", sess)
	if res.ExitCode != ExitOK {
		t.Errorf("session unusable after panic: %+v", res)
	}
}

func TestDispatchSetsDuration(t *testing.T) {
	d, sess := testDispatcher(t)

	res := d.Dispatch(context.Background(), "ok", sess)
	if res.Duration < 0 {
		t.Errorf("Duration = %v, want non-negative", res.Duration)
	}
}
