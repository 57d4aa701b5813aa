package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"termai/internal/config"
)

// Retry configuration constants
const (
	MaxRetryAttempts  = 3
	InitialBackoff    = 500 * time.Millisecond
	MaxBackoff        = 5 * time.Second
	BackoffMultiplier = 2.0
)

// RetryableStatusCodes are HTTP status codes that should trigger a retry
var RetryableStatusCodes = []int{
	http.StatusTooManyRequests,     // 429 - Rate limited
	http.StatusServiceUnavailable,  // 503 - Service unavailable
	http.StatusGatewayTimeout,      // 504 - Gateway timeout
	http.StatusBadGateway,          // 502 - Bad gateway
	http.StatusInternalServerError, // 500 - Internal server error (transient)
}

// ShouldRotateKey checks if the error status code indicates we should try another key
func ShouldRotateKey(statusCode int) bool {
	for _, code := range config.RotatableErrorCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// ShouldRetry checks if the error status code indicates we should retry the call
func ShouldRetry(statusCode int) bool {
	for _, code := range RetryableStatusCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// CalculateBackoff returns the backoff duration for a given attempt number
func CalculateBackoff(attempt int) time.Duration {
	backoff := InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * BackoffMultiplier)
		if backoff > MaxBackoff {
			backoff = MaxBackoff
			break
		}
	}
	return backoff
}

// RetryableFunc is a function that can be retried
type RetryableFunc[T any] func() (T, error)

// WithRetry executes a function with retry logic for transient failures.
// It retries on retryable HTTP status codes (429, 500, 502, 503, 504)
// with exponential backoff between attempts.
func WithRetry[T any](ctx context.Context, fn RetryableFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt < MaxRetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("operation cancelled: %w", err)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if apiErr, ok := err.(*APIError); ok {
			if !ShouldRetry(apiErr.StatusCode) {
				return zero, err
			}
		} else {
			// Non-API error, don't retry
			return zero, err
		}

		if attempt < MaxRetryAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("operation cancelled: %w", ctx.Err())
			case <-time.After(CalculateBackoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("max retry attempts (%d) exceeded: %w", MaxRetryAttempts, lastErr)
}
