package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"termai/internal/config"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		Model:   "test-model",
		BaseURL: url,
		Keys:    config.NewKeyRotator([]string{"key-1", "key-2"}),
	}
}

func chatReply(content string) ChatResponse {
	return ChatResponse{
		ID:      "resp-1",
		Choices: []Choice{{Message: Message{Role: "assistant", Content: content}}},
	}
}

func TestTranslateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("Authorization = %q", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("request = %+v", req)
		}

		content := `{"commands":["mkdir photos","mv *.jpg photos/"],"explanation":"Create a folder and move the images","success":true,"error_message":""}`
		_ = json.NewEncoder(w).Encode(chatReply(content))
	}))
	defer server.Close()

	tr := NewTranslator(NewGeminiClient(testConfig(server.URL)), "test-model")
	suggestion, err := tr.Translate(context.Background(), "move my photos into a folder", Context{
		WorkingDir: "/home/u",
		Entries:    []string{"a.jpg", "b.jpg"},
		OS:         "linux",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	want := []string{"mkdir photos", "mv *.jpg photos/"}
	if !reflect.DeepEqual(suggestion.Commands, want) {
		t.Errorf("Commands = %v, want %v", suggestion.Commands, want)
	}
	if !suggestion.Interpreted() {
		t.Error("Interpreted() = false")
	}
	if suggestion.Explanation == "" {
		t.Error("Explanation is empty")
	}
}

func TestTranslateFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "```json\n{\"commands\":[\"ls\"],\"explanation\":\"List files\",\"success\":true}\n```"
		_ = json.NewEncoder(w).Encode(chatReply(content))
	}))
	defer server.Close()

	tr := NewTranslator(NewGeminiClient(testConfig(server.URL)), "test-model")
	suggestion, err := tr.Translate(context.Background(), "show files", Context{WorkingDir: "/"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !reflect.DeepEqual(suggestion.Commands, []string{"ls"}) {
		t.Errorf("Commands = %v", suggestion.Commands)
	}
}

func TestTranslateModelRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := `{"commands":[],"explanation":"","success":false,"error_message":"request is too vague"}`
		_ = json.NewEncoder(w).Encode(chatReply(content))
	}))
	defer server.Close()

	tr := NewTranslator(NewGeminiClient(testConfig(server.URL)), "test-model")
	suggestion, err := tr.Translate(context.Background(), "do the thing", Context{WorkingDir: "/"})
	if err != nil {
		t.Fatalf("a refusal is a valid reply, got error: %v", err)
	}
	if suggestion.Interpreted() {
		t.Error("Interpreted() = true for refusal")
	}
	if suggestion.ErrorMessage != "request is too vague" {
		t.Errorf("ErrorMessage = %q", suggestion.ErrorMessage)
	}
}

func TestTranslateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatReply("sure, just run ls and you'll see"))
	}))
	defer server.Close()

	tr := NewTranslator(NewGeminiClient(testConfig(server.URL)), "test-model")
	_, err := tr.Translate(context.Background(), "show files", Context{WorkingDir: "/"})

	var terr *TranslateError
	if !errors.As(err, &terr) || terr.Kind != MalformedResponse {
		t.Fatalf("err = %v, want MalformedResponse", err)
	}
}

func TestTranslateProviderError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad request"}}`)
	}))
	defer server.Close()

	tr := NewTranslator(NewGeminiClient(testConfig(server.URL)), "test-model")
	_, err := tr.Translate(context.Background(), "show files", Context{WorkingDir: "/"})

	var terr *TranslateError
	if !errors.As(err, &terr) || terr.Kind != ProviderUnavailable {
		t.Fatalf("err = %v, want ProviderUnavailable", err)
	}
	// 400 is neither retryable nor rotatable
	if calls != 1 {
		t.Errorf("provider called %d times, want 1", calls)
	}
}

func TestCompleteRotatesKeyOnAuthError(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Authorization")
		seen = append(seen, key)
		if key == "Bearer key-1" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"bad key"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(chatReply(`{"commands":["ls"],"success":true}`))
	}))
	defer server.Close()

	client := NewGeminiClient(testConfig(server.URL))
	resp, err := client.Complete(context.Background(), ChatRequest{Model: "test-model"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.GetContent() == "" {
		t.Error("empty content after rotation")
	}
	if !reflect.DeepEqual(seen, []string{"Bearer key-1", "Bearer key-2"}) {
		t.Errorf("keys used = %v", seen)
	}
}

func TestCompleteWithoutKeys(t *testing.T) {
	cfg := &config.Config{Model: "m", BaseURL: "http://unused", Keys: config.NewKeyRotator(nil)}
	client := NewGeminiClient(cfg)
	if _, err := client.Complete(context.Background(), ChatRequest{}); err == nil {
		t.Error("expected error without API keys")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
