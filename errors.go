package dymo

import (
	"errors"
	"fmt"
	"time"

	"github.com/dymoapi/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrBadRequest is returned when request parameters fail local validation.
	ErrBadRequest = errors.New("invalid request parameters")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// DymoError is implemented by all SDK errors.
type DymoError interface {
	error
	DymoError() // marker method
}

// BadRequestError reports parameters rejected before any request was sent.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// Is implements errors.Is for sentinel error matching.
func (e *BadRequestError) Is(target error) bool {
	return target == ErrBadRequest
}

// DymoError implements the DymoError interface.
func (e *BadRequestError) DymoError() {}

// APIError represents an HTTP error status from the Dymo API.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// DymoError implements the DymoError interface.
func (e *APIError) DymoError() {}

// NetworkError represents a transport-level failure where no response was
// obtained.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DymoError implements the DymoError interface.
func (e *NetworkError) DymoError() {}

// RateLimitError represents an HTTP 429 response. The executor never
// retries these.
type RateLimitError struct {
	// RetryAfter is the server-communicated wait, zero when unknown.
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limited"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: retry after %s", msg, e.RetryAfter)
	}
	return msg
}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// DymoError implements the DymoError interface.
func (e *RateLimitError) DymoError() {}

// IsServerError reports whether err is an API error with a 5xx status.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
}

// wrapError converts internal API errors to public errors so that
// errors.Is() checks work with the public sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			RequestID:  apiErr.RequestID,
		}
	}

	var rlErr *api.RateLimitError
	if errors.As(err, &rlErr) {
		return &RateLimitError{
			RetryAfter: rlErr.RetryAfter,
			Message:    rlErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}
