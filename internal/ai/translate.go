package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"termai/internal/logging"
)

// ErrorKind classifies a translation failure
type ErrorKind int

const (
	// ProviderUnavailable means the provider could not be reached or
	// returned an error status
	ProviderUnavailable ErrorKind = iota
	// MalformedResponse means the provider replied but the reply did
	// not follow the structured JSON contract
	MalformedResponse
)

// TranslateError is returned when a query could not be translated.
type TranslateError struct {
	Kind ErrorKind
	Err  error
}

func (e *TranslateError) Error() string {
	switch e.Kind {
	case MalformedResponse:
		return fmt.Sprintf("malformed AI response: %v", e.Err)
	default:
		return fmt.Sprintf("AI provider unavailable: %v", e.Err)
	}
}

func (e *TranslateError) Unwrap() error {
	return e.Err
}

// Suggestion is the structured result of translating a query. It is
// data only; the caller decides whether to dispatch its commands.
type Suggestion struct {
	// Query is the natural language input that produced the suggestion
	Query string
	// Commands are the proposed terminal commands, in execution order.
	// Empty when the model could not interpret the query.
	Commands []string
	// Explanation is the model's one-line description of the commands
	Explanation string
	// ErrorMessage holds the model's reason when it could not interpret
	// the query
	ErrorMessage string
	// Raw is the undecoded reply content, kept for debugging
	Raw string
}

// Interpreted reports whether the model produced at least one command.
func (s *Suggestion) Interpreted() bool {
	return len(s.Commands) > 0
}

// Context carries the session state the model needs to ground its
// translation.
type Context struct {
	WorkingDir string
	Entries    []string
	OS         string
}

// reply mirrors the JSON contract the model is instructed to follow
type reply struct {
	Commands     []string `json:"commands"`
	Explanation  string   `json:"explanation"`
	Success      bool     `json:"success"`
	ErrorMessage string   `json:"error_message"`
}

// Translator turns natural language queries into command suggestions.
type Translator struct {
	client Client
	model  string
	logger *logging.Logger
}

// NewTranslator creates a Translator backed by the given client.
func NewTranslator(client Client, model string) *Translator {
	return &Translator{client: client, model: model, logger: logging.Default}
}

// SetLogger overrides the logger used for debug output.
func (t *Translator) SetLogger(logger *logging.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// Translate sends a single completion request for the query and decodes
// the structured reply. A reply with success=false is a valid
// Suggestion with no commands, not an error.
func (t *Translator) Translate(ctx context.Context, query string, tctx Context) (*Suggestion, error) {
	req := ChatRequest{
		Model: t.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(query, tctx)},
		},
		Temperature: 0.1,
	}

	resp, err := t.client.Complete(ctx, req)
	if err != nil {
		return nil, &TranslateError{Kind: ProviderUnavailable, Err: err}
	}

	content := strings.TrimSpace(resp.GetContent())
	if content == "" {
		return nil, &TranslateError{Kind: MalformedResponse, Err: fmt.Errorf("empty reply")}
	}

	cleaned := stripFences(content)

	var r reply
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		t.logger.Debug("undecodable AI reply", logging.Fields{"content": truncateForLog(content)})
		return nil, &TranslateError{Kind: MalformedResponse, Err: err}
	}

	s := &Suggestion{
		Query:        query,
		Explanation:  r.Explanation,
		ErrorMessage: r.ErrorMessage,
		Raw:          content,
	}
	if r.Success {
		for _, c := range r.Commands {
			c = strings.TrimSpace(c)
			if c != "" {
				s.Commands = append(s.Commands, c)
			}
		}
	}

	t.logger.Debug("translated query", logging.Fields{
		"query":    query,
		"commands": len(s.Commands),
	})
	return s, nil
}

// stripFences removes a markdown code fence wrapper if present. Models
// often wrap the JSON reply in ```json ... ``` despite instructions.
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
