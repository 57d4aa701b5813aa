package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"none", LevelNone},
		{"off", LevelNone},
		{"  info  ", LevelInfo},
		{"garbage", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below the level were logged:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("messages at or above the level were dropped:\n%s", out)
	}
}

func TestLevelNoneSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelNone, Output: &buf})

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d", errors.New("boom"))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	logger.Info("session created", Fields{"id": "abc", "dir": "/tmp"})

	line := buf.String()
	if !strings.Contains(line, "INFO: session created") {
		t.Errorf("missing level and message: %q", line)
	}
	// Field keys come out sorted
	dirIdx := strings.Index(line, "dir=/tmp")
	idIdx := strings.Index(line, "id=abc")
	if dirIdx == -1 || idIdx == -1 {
		t.Fatalf("missing fields: %q", line)
	}
	if dirIdx > idIdx {
		t.Errorf("fields not sorted by key: %q", line)
	}
}

func TestTextFormatIncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	logger.Error("request failed", errors.New("connection refused"))

	if !strings.Contains(buf.String(), `error="connection refused"`) {
		t.Errorf("error not included: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	logger.Warn("disk almost full", Fields{"free_mb": 12})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "WARN" {
		t.Errorf("Level = %q, want WARN", entry.Level)
	}
	if entry.Message != "disk almost full" {
		t.Errorf("Message = %q", entry.Message)
	}
	if got := entry.Fields["free_mb"]; got != float64(12) {
		t.Errorf("Fields[free_mb] = %v, want 12", got)
	}
}

func TestMultipleFieldMapsMerge(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	logger.Info("merged", Fields{"a": 1}, Fields{"b": 2, "a": 3})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Fields["a"] != float64(3) || entry.Fields["b"] != float64(2) {
		t.Errorf("fields merged wrong: %v", entry.Fields)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelError, Output: &buf})

	logger.Info("before")
	logger.SetLevel(LevelDebug)
	logger.Info("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("message logged before level change: %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("message dropped after level change: %q", out)
	}
}
