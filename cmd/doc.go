// Package cmd implements the CLI commands for the termai application.
//
// # Architecture
//
// The root command starts the interactive terminal. Subcommands:
//
//   - exec: run a single command line and exit with its status code
//   - web: serve the terminal over HTTP
//   - init-config: write a sample configuration file
//
// The interactive host owns the REPL loop, routes "ai"/"smart" prefixed
// input through the translator, and gates suggested commands through
// the safety policy before dispatching them.
package cmd
