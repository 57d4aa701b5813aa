package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"termai/internal/config"
	"termai/internal/constants"
	"termai/internal/logging"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the chat completions API request
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice represents a response choice
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse represents the API response
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// GetContent extracts the first choice's content from the response
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// errorResponse represents a provider error payload
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the provider-facing interface the Translator depends on.
type Client interface {
	// Complete sends a chat completion request (non-streaming)
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Close releases any resources held by the client
	Close()
}

var _ Client = (*GeminiClient)(nil)

// GeminiClient talks to the Gemini OpenAI-compatible endpoint. On auth
// and rate-limit errors it rotates to the next configured API key
// before retrying.
type GeminiClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewGeminiClient creates a client from the application config. With
// Debug enabled, requests and responses are logged with sensitive
// headers and fields redacted.
func NewGeminiClient(cfg *config.Config) *GeminiClient {
	transport := http.DefaultTransport

	if cfg.Debug {
		logger := logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.FormatJSON,
		})
		transport = logging.NewRoundTripper(http.DefaultTransport, logging.NewHTTPLogger(logger))
	}

	return &GeminiClient{
		httpClient: &http.Client{
			Timeout:   constants.DefaultAPITimeout,
			Transport: transport,
		},
		config: cfg,
	}
}

// Complete sends a chat completion request, retrying transient failures
// and rotating API keys on 401/403/429.
func (c *GeminiClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.config.AIEnabled() {
		return nil, errors.New("no API key configured. Set GEMINI_API_KEY or GEMINI_API_KEYS")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return WithRetry(ctx, func() (*ChatResponse, error) {
		resp, err := c.doOnce(ctx, jsonData)
		if err == nil {
			return resp, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && ShouldRotateKey(apiErr.StatusCode) {
			if _, rotateErr := c.config.Keys.Rotate(); rotateErr == nil {
				logging.Debug("rotated API key", logging.Fields{
					"index": c.config.Keys.GetCurrentIndex(),
				})
				return c.doOnce(ctx, jsonData)
			}
		}
		return nil, err
	})
}

func (c *GeminiClient) doOnce(ctx context.Context, body []byte) (*ChatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Keys.GetCurrentKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			errMsg = errResp.Error.Message
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("AI API error: %s", errMsg),
		}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &chatResp, nil
}

// Close is a no-op for GeminiClient as it holds no resources
func (c *GeminiClient) Close() {}
