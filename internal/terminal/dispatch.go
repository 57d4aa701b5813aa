package terminal

import (
	"context"
	"errors"
	"strings"
	"time"

	"termai/internal/logging"
)

// DefaultAliases are the shorthand expansions applied to the first token of
// an input line before tokenizing.
var DefaultAliases = map[string]string{
	"ll":  "ls -la",
	"la":  "ls -la",
	"..":  "cd ..",
	"...": "cd ../..",
	"h":   "history",
	"c":   "clear",
	"q":   "exit",
}

// Dispatcher resolves and executes input lines against a registry. It is the
// single entry point hosts use; handlers are never called directly.
type Dispatcher struct {
	registry *Registry
	aliases  map[string]string
	logger   *logging.Logger
}

// NewDispatcher creates a dispatcher over reg with the default aliases.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		aliases:  DefaultAliases,
		logger:   logging.Default,
	}
}

// SetLogger replaces the dispatcher's logger.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Registry returns the command table the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch executes one raw input line against sess and returns a uniform
// Result. Every non-blank line is appended to the session history, whether
// it succeeded or not; blank input is a no-op and is not recorded.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string, sess *Session) Result {
	start := time.Now()
	res := d.run(ctx, raw, sess)
	res.Duration = time.Since(start)

	d.logger.Debug("dispatched", logging.Fields{
		"line":        strings.TrimSpace(raw),
		"exit_code":   res.ExitCode,
		"duration_ms": res.Duration.Milliseconds(),
	})
	return res
}

func (d *Dispatcher) run(ctx context.Context, raw string, sess *Session) (res Result) {
	if strings.TrimSpace(raw) == "" {
		return OK()
	}
	// History records the line as typed, pre-alias, success or failure alike.
	defer sess.AppendHistory(raw)

	parsed, err := Tokenize(d.ExpandAlias(raw))
	if err != nil {
		if errors.Is(err, ErrUnterminatedQuote) {
			return Failf(ExitUsage, "syntax error: %v", err)
		}
		return Failf(ExitUsage, "%v", err)
	}
	if parsed.Empty() {
		return OK()
	}

	handler, ok := d.registry.Lookup(parsed.Name)
	if !ok {
		return Failf(ExitNotFound, "command not found: %s", parsed.Name)
	}

	// A handler defect must never crash the session.
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", nil, logging.Fields{
				"command": parsed.Name,
				"panic":   r,
			})
			res = Failf(ExitFailure, "%s: internal error: %v", parsed.Name, r)
		}
	}()

	return handler.Execute(ctx, parsed.Args, sess)
}

// ExpandAlias replaces a first token that matches a known alias with its
// expansion, once.
func (d *Dispatcher) ExpandAlias(raw string) string {
	trimmed := strings.TrimSpace(raw)
	name := trimmed
	rest := ""
	if i := strings.IndexFunc(trimmed, func(r rune) bool { return r == ' ' || r == '\t' }); i >= 0 {
		name, rest = trimmed[:i], trimmed[i:]
	}
	if expansion, ok := d.aliases[name]; ok {
		return expansion + rest
	}
	return raw
}
