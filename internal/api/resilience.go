package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dymoapi/client-go/ratelimit"
)

// Resilience defaults.
const (
	DefaultRetryAttempts = 2
	DefaultRetryDelay    = time.Second
)

// ResilienceConfig controls retry, backoff and fallback behavior for
// outbound requests. Values are clamped to non-negative at construction
// and immutable afterwards.
type ResilienceConfig struct {
	// FallbackEnabled allows Execute to return caller-supplied fallback
	// data instead of an error when all attempts fail.
	FallbackEnabled bool
	// RetryAttempts is the number of additional attempts after the first.
	RetryAttempts int
	// RetryDelay is the base backoff delay, doubled after each attempt.
	RetryDelay time.Duration
}

// DefaultResilienceConfig returns the default resilience configuration.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		FallbackEnabled: false,
		RetryAttempts:   DefaultRetryAttempts,
		RetryDelay:      DefaultRetryDelay,
	}
}

// Stats is a snapshot of resilience counters.
type Stats struct {
	Attempts       uint64
	Retries        uint64
	Fallbacks      uint64
	RateLimitWaits uint64
}

// outcome classifies a completed attempt.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetry
	outcomeRateLimited
	outcomeFatal
)

// classify maps an HTTP status to an attempt outcome: 2xx succeeds, 5xx is
// retryable, 429 is rate-limited and never retried, any other 4xx is fatal.
func classify(statusCode int) outcome {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return outcomeSuccess
	case statusCode == http.StatusTooManyRequests:
		return outcomeRateLimited
	case statusCode >= 500 && statusCode < 600:
		return outcomeRetry
	default:
		return outcomeFatal
	}
}

// Manager executes HTTP requests with retry, exponential backoff, fallback
// substitution and rate-limit tracking. It binds one configuration and one
// client identifier; per-identifier state lives in the shared tracker.
type Manager struct {
	cfg      ResilienceConfig
	clientID string
	tracker  *ratelimit.Tracker
	logger   *slog.Logger

	// sleep is replaced in tests to observe waits without blocking.
	sleep func(ctx context.Context, d time.Duration) error

	attempts       atomic.Uint64
	retries        atomic.Uint64
	fallbacks      atomic.Uint64
	rateLimitWaits atomic.Uint64
}

// NewManager creates a resilience manager. Negative config values are
// clamped to zero.
func NewManager(cfg ResilienceConfig, clientID string, tracker *ratelimit.Tracker, logger *slog.Logger) *Manager {
	if cfg.RetryAttempts < 0 {
		cfg.RetryAttempts = 0
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if tracker == nil {
		tracker = ratelimit.NewTracker()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		cfg:      cfg,
		clientID: clientID,
		tracker:  tracker,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Config returns the bound resilience configuration.
func (m *Manager) Config() ResilienceConfig {
	return m.cfg
}

// ClientID returns the identifier used to key rate-limit state.
func (m *Manager) ClientID() string {
	return m.clientID
}

// Stats returns a snapshot of the resilience counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Attempts:       m.attempts.Load(),
		Retries:        m.retries.Load(),
		Fallbacks:      m.fallbacks.Load(),
		RateLimitWaits: m.rateLimitWaits.Load(),
	}
}

// Execute sends req through httpClient with resilience applied and returns
// the response body of the first successful attempt.
//
// The rate-limit tracker is consulted before the first attempt and updated
// from the headers of every response. Transport failures and 5xx responses
// are retried up to RetryAttempts times with exponential backoff
// (RetryDelay * 2^(attempt-1)). A 429 is never retried: if the server sent
// Retry-After the manager waits that long, then fails. When all attempts
// are exhausted or a non-retryable failure is hit, fallback is returned
// verbatim if enabled and non-nil, otherwise the last error.
//
// Context cancellation aborts immediately, including mid-wait.
func (m *Manager) Execute(ctx context.Context, httpClient *http.Client, req *http.Request, fallback []byte) ([]byte, error) {
	if m.tracker.IsRateLimited(ctx, m.clientID) {
		if wait, ok := m.tracker.RetryAfter(ctx, m.clientID); ok && wait > 0 {
			m.logger.Warn("client is rate limited, waiting before request",
				"client_id", m.clientID, "wait", wait)
			m.rateLimitWaits.Add(1)
			if err := m.sleep(ctx, wait); err != nil {
				return nil, err
			}
		}
	}

	var bodyBytes []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, &NetworkError{Err: err, URL: req.URL.String()}
		}
		bodyBytes = data
	}

	totalAttempts := 1 + m.cfg.RetryAttempts
	var lastErr error

attempts:
	for attempt := 1; attempt <= totalAttempts; attempt++ {
		m.attempts.Add(1)

		attemptReq := req.Clone(ctx)
		if bodyBytes != nil {
			attemptReq.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := httpClient.Do(attemptReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = &NetworkError{Err: err, URL: req.URL.String(), Attempt: attempt}
			if attempt == totalAttempts {
				break attempts
			}
			if err := m.backoff(ctx, attempt, lastErr); err != nil {
				return nil, err
			}
			continue
		}

		payload, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		m.tracker.Update(ctx, m.clientID, resp.Header)

		switch classify(resp.StatusCode) {
		case outcomeSuccess:
			if readErr != nil {
				return nil, &NetworkError{Err: readErr, URL: req.URL.String(), Attempt: attempt}
			}
			return payload, nil

		case outcomeRateLimited:
			rlErr := &RateLimitError{Message: "rate limited (429) - not retrying"}
			if wait, ok := m.tracker.RetryAfter(ctx, m.clientID); ok {
				rlErr.RetryAfter = wait
				if wait > 0 {
					m.logger.Warn("rate limited, waiting before giving up",
						"client_id", m.clientID, "wait", wait)
					m.rateLimitWaits.Add(1)
					if err := m.sleep(ctx, wait); err != nil {
						return nil, err
					}
				}
			}
			lastErr = rlErr
			break attempts

		case outcomeRetry:
			lastErr = parseErrorBody(resp.StatusCode, payload)
			if attempt == totalAttempts {
				break attempts
			}
			if err := m.backoff(ctx, attempt, lastErr); err != nil {
				return nil, err
			}

		case outcomeFatal:
			lastErr = parseErrorBody(resp.StatusCode, payload)
			break attempts
		}
	}

	if m.cfg.FallbackEnabled && fallback != nil {
		m.logger.Warn("request failed, using fallback data",
			"url", req.URL.String(), "error", lastErr)
		m.fallbacks.Add(1)
		return fallback, nil
	}

	return nil, lastErr
}

// backoff waits RetryDelay * 2^(attempt-1) before the next attempt.
func (m *Manager) backoff(ctx context.Context, attempt int, cause error) error {
	delay := m.cfg.RetryDelay * time.Duration(1<<uint(attempt-1))
	m.logger.Warn("request attempt failed, retrying",
		"attempt", attempt, "delay", delay, "error", cause)
	m.retries.Add(1)
	return m.sleep(ctx, delay)
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
