package central

import (
	"fmt"
	"time"
)

// AuthError is returned when an access token could not be obtained or
// refreshed, or when the gateway still answers 401 after a forced refresh.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e == nil {
		return "authentication error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *AuthError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RateLimitError is returned when the per-second window is still exhausted
// after the retry policy gave up. Waited is the total time spent between
// retries before giving up.
type RateLimitError struct {
	Path     string
	Attempts int
	Waited   time.Duration
}

func (e *RateLimitError) Error() string {
	if e == nil {
		return "rate limited"
	}
	if e.Waited > 0 {
		return fmt.Sprintf("per-second rate limit on %s still exceeded after %d attempts (waited %s)", e.Path, e.Attempts, e.Waited)
	}
	return fmt.Sprintf("per-second rate limit on %s still exceeded after %d attempts", e.Path, e.Attempts)
}

// QuotaExhaustedError is returned when the per-day quota is spent. Waiting
// within the process does not help; the window resets on the gateway side.
type QuotaExhaustedError struct {
	Path     string
	DayLimit int
}

func (e *QuotaExhaustedError) Error() string {
	if e == nil {
		return "daily quota exhausted"
	}
	if e.DayLimit > 0 {
		return fmt.Sprintf("per-day quota of %d requests exhausted (request to %s)", e.DayLimit, e.Path)
	}
	return fmt.Sprintf("per-day quota exhausted (request to %s)", e.Path)
}

// RequestError is returned for any non-2xx response that is not a token or
// rate-limit condition. The parsed body is preserved so callers can decide
// how fatal the failure is.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       any
}

func (e *RequestError) Error() string {
	if e == nil {
		return "request error"
	}
	return fmt.Sprintf("%s %s failed: status %d", e.Method, e.Path, e.StatusCode)
}
