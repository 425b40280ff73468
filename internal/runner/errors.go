package runner

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutError represents a snippet exceeding its execution budget.
type TimeoutError struct {
	Snippet         string        // locator of the snippet that timed out
	TimeoutDuration time.Duration // budget that was exceeded
	Timestamp       time.Time     // when the timeout occurred
}

// NewTimeoutError creates a TimeoutError with the current timestamp.
func NewTimeoutError(snippet string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		Snippet:         snippet,
		TimeoutDuration: duration,
		Timestamp:       time.Now(),
	}
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timeout after %v", e.Snippet, e.TimeoutDuration)
}

// Unwrap returns context.DeadlineExceeded to support error wrapping.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// IsTimeoutError checks if the error is or wraps a TimeoutError or
// context.DeadlineExceeded.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
