package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// APIError represents an HTTP error status returned by the Dymo API.
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

// IsServerError reports whether the status is in the 5xx range.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NetworkError represents a transport-level failure where no response was
// obtained (DNS, connection refused, reset).
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RateLimitError represents an HTTP 429 response. It is never retried.
type RateLimitError struct {
	// RetryAfter is the server-communicated wait, zero when the server
	// did not say.
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limited (429)"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: retry after %s", msg, e.RetryAfter)
	}
	return msg
}

// parseErrorBody builds an APIError from a non-2xx response body. The Dymo
// API reports failures as {"error": "..."} or {"message": "..."}.
func parseErrorBody(statusCode int, body []byte) *APIError {
	var errResp struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}

	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Error
		if msg == "" {
			msg = errResp.Message
		}
		if msg != "" {
			return &APIError{
				StatusCode: statusCode,
				Message:    msg,
				RequestID:  errResp.RequestID,
			}
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}
