package api

import (
	"errors"
	"testing"
	"time"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{"full", &APIError{StatusCode: 400, Message: "bad", RequestID: "r1"}, "API error 400: bad (request_id: r1)"},
		{"no request id", &APIError{StatusCode: 500, Message: "boom"}, "API error 500: boom"},
		{"status only", &APIError{StatusCode: 503}, "API error 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitError_Error(t *testing.T) {
	err := &RateLimitError{RetryAfter: 5 * time.Second}
	if got := err.Error(); got != "rate limited (429): retry after 5s" {
		t.Errorf("Error() = %q", got)
	}

	err = &RateLimitError{Message: "slow down"}
	if got := err.Error(); got != "slow down" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Err: cause, URL: "https://example.com"}

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should match the wrapped cause")
	}
}
