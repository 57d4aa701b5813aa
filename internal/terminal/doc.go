// Package terminal implements the command interpretation and dispatch engine.
//
// # Architecture
//
//   - tokenize.go: quote-aware splitting of a raw input line into ParsedInput
//   - registry.go: immutable name -> Handler table built at startup
//   - dispatch.go: Dispatcher resolving and executing one input line
//   - session.go: per-terminal Session (working directory, history)
//   - result.go: uniform Result returned by every handler
//
// # Dispatch flow
//
// A raw line goes through alias expansion, tokenizing, registry lookup and
// handler execution. Every failure along the way is converted into a Result
// with a conventional exit code (0 success, 1 handler failure, 2 syntax
// error, 127 unknown command) and a human-readable stderr line; nothing
// propagates past Dispatch as a fault. A panicking handler is recovered and
// reported instead of tearing down the session.
//
// Hosts (interactive loop, single-shot exec, web route) call Dispatch and
// nothing else; handlers are never invoked directly.
package terminal
