// Package builtin implements the terminal's built-in commands.
//
// # Architecture
//
//   - register.go: wires every builtin into a terminal.Registry at startup
//   - fileops.go: filesystem commands (ls, cd, mkdir, rm, cp, mv, cat, ...)
//   - sysinfo.go: process and system inspection (ps, top, df, free, uptime)
//   - misc.go: echo, date, whoami, history, help, clear, exit
//
// Each handler owns its argument validation and OS interaction. Batch
// commands (rm, cp, mv, mkdir, touch, cat, grep with multiple targets)
// process every target independently: a failure on one target produces a
// stderr line tagged with that target and does not stop the rest; the exit
// code is non-zero when any target failed.
//
// Paths are resolved against the session's working directory unless
// absolute. System inspection commands degrade gracefully: a metric the
// platform cannot provide is reported as "unavailable" instead of failing
// the whole command.
package builtin
