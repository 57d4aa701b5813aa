package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxLoggedBody caps how much of a request/response body is logged
const maxLoggedBody = 10000

// HTTPLogger logs provider request/response traffic at debug level,
// redacting credentials.
type HTTPLogger struct {
	logger *Logger
}

// NewHTTPLogger creates a new HTTP logger
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{logger: logger}
}

// LogRequest logs an outgoing HTTP request
func (h *HTTPLogger) LogRequest(req *http.Request, body []byte) {
	fields := Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}

	headers := make(map[string]string)
	for k, v := range req.Header {
		if isSensitiveHeader(k) {
			headers[k] = "[REDACTED]"
		} else if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	fields["headers"] = headers

	if len(body) > 0 {
		fields["body"] = loggableBody(body)
		fields["body_size"] = len(body)
	}

	h.logger.Debug("HTTP request", fields)
}

// LogResponse logs an HTTP response
func (h *HTTPLogger) LogResponse(resp *http.Response, body []byte, duration time.Duration) {
	fields := Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}

	if len(body) > 0 {
		fields["body"] = loggableBody(body)
		fields["body_size"] = len(body)
	}

	h.logger.Debug("HTTP response", fields)
}

// LogError logs a transport-level failure
func (h *HTTPLogger) LogError(err error, req *http.Request) {
	h.logger.Error("HTTP error", err, Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	})
}

// RoundTripper wraps an http.RoundTripper with debug logging
type RoundTripper struct {
	wrapped http.RoundTripper
	logger  *HTTPLogger
}

// NewRoundTripper creates a logging round tripper
func NewRoundTripper(wrapped http.RoundTripper, logger *HTTPLogger) *RoundTripper {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	return &RoundTripper{wrapped: wrapped, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}
	rt.logger.LogRequest(req, reqBody)

	resp, err := rt.wrapped.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.LogError(err, req)
		return nil, err
	}

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewBuffer(respBody))
	rt.logger.LogResponse(resp, respBody, duration)

	return resp, nil
}

func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "api-key", "x-api-key", "cookie", "set-cookie":
		return true
	}
	return false
}

// loggableBody returns the body truncated and, when valid JSON, with
// credential-looking fields redacted.
func loggableBody(body []byte) interface{} {
	if json.Valid(body) {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			return redactSensitive(parsed)
		}
	}
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "...[truncated]"
	}
	return string(body)
}

func redactSensitive(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			lower := strings.ToLower(k)
			if strings.Contains(lower, "key") || strings.Contains(lower, "token") ||
				strings.Contains(lower, "secret") || strings.Contains(lower, "auth") {
				result[k] = "[REDACTED]"
			} else {
				result[k] = redactSensitive(val)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = redactSensitive(item)
		}
		return result
	default:
		return data
	}
}
