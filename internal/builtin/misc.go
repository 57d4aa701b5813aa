package builtin

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"termai/internal/constants"
	"termai/internal/terminal"
)

// termNow is swapped out in tests for deterministic timestamps.
var termNow = time.Now

func echoCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	return terminal.OK(strings.Join(args, " "))
}

func dateCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	return terminal.OK(termNow().Format("Mon Jan 2 15:04:05 MST 2006"))
}

func whoamiCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return terminal.OK(u.Username)
	}
	for _, env := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(env); v != "" {
			return terminal.OK(v)
		}
	}
	return terminal.OK("unavailable")
}

// historyCmd shows the most recent session entries, numbered from the
// start of the session.
func historyCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	entries := sess.History()
	start := 0
	if len(entries) > constants.HistoryDisplayLimit {
		start = len(entries) - constants.HistoryDisplayLimit
	}
	var out []string
	for i := start; i < len(entries); i++ {
		out = append(out, fmt.Sprintf("%5d  %s", i+1, entries[i]))
	}
	return terminal.OK(out...)
}

func clearCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	return terminal.OK("\033[2J\033[H")
}

func exitCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	return terminal.OK("Goodbye!")
}
