// Package ai translates natural language queries into terminal commands
// using an OpenAI-compatible chat completions endpoint.
//
// # Architecture
//
// The package is organized in three layers:
//
//   - client.go: Client interface and the GeminiClient HTTP implementation
//     with API key rotation on auth and rate-limit errors
//   - retry.go: retry with exponential backoff for transient failures
//   - translate.go / prompt.go: the Translator, which builds the prompt
//     from session context, issues a single completion call, and decodes
//     the structured JSON reply into a Suggestion
//
// A Suggestion is data only. The caller decides whether to show it,
// confirm it, or dispatch its commands; nothing in this package executes
// anything.
package ai
