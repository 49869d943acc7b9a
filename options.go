package dymo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dymoapi/client-go/ratelimit"
)

const (
	defaultBaseURL = "https://api.tpeoficial.com"
	defaultTimeout = 30 * time.Second
)

// ResilienceConfig controls retry, backoff and fallback behavior for all
// requests issued by a client. Negative values are clamped to zero.
type ResilienceConfig struct {
	// FallbackEnabled allows calls to return per-call fallback data
	// instead of an error when all attempts fail.
	FallbackEnabled bool
	// RetryAttempts is the number of additional attempts after the first.
	RetryAttempts int
	// RetryDelay is the base backoff delay, doubled after each attempt.
	RetryDelay time.Duration
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL           string
	apiKey            string
	httpClient        *http.Client
	timeout           time.Duration
	logger            *slog.Logger
	clientID          string
	resilience        ResilienceConfig
	store             ratelimit.Store
	requestsPerSecond float64
	requestBurst      int
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key. The public endpoints work without one;
// authenticated keys get higher rate limits.
func WithAPIKey(apiKey string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
	}
}

// WithHTTPClient sets a custom HTTP client. It takes precedence over
// WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger for retry/fallback/rate-limit diagnostics.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithClientID sets the identifier that keys rate-limit state, for example
// a tenant name. Default: the API key if set, otherwise a generated UUID.
func WithClientID(clientID string) Option {
	return func(c *clientConfig) {
		c.clientID = clientID
	}
}

// WithResilience sets the retry/backoff/fallback configuration.
// Default: no fallback, 2 retries, 1 second base delay.
func WithResilience(cfg ResilienceConfig) Option {
	return func(c *clientConfig) {
		c.resilience = cfg
	}
}

// WithRateLimitStore sets the backing store for rate-limit state, for
// example a ratelimit.RedisStore shared across processes.
// Default: an in-memory store private to this client.
func WithRateLimitStore(store ratelimit.Store) Option {
	return func(c *clientConfig) {
		c.store = store
	}
}

// WithRequestRate enables client-side pacing: at most rps requests per
// second with the given burst size.
func WithRequestRate(rps float64, burst int) Option {
	return func(c *clientConfig) {
		c.requestsPerSecond = rps
		c.requestBurst = burst
	}
}

// callConfig holds per-call configuration.
type callConfig struct {
	fallback any
}

// CallOption configures a single API call.
type CallOption func(*callConfig)

// WithFallback supplies a payload returned in place of the response when
// all attempts fail and fallback substitution is enabled on the client.
// The value must marshal to the same JSON shape as the call's result.
func WithFallback(v any) CallOption {
	return func(c *callConfig) {
		c.fallback = v
	}
}

func applyCallOptions(opts []CallOption) *callConfig {
	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// fallbackJSON marshals the fallback payload, or returns nil when no
// fallback was supplied.
func (c *callConfig) fallbackJSON() ([]byte, error) {
	if c.fallback == nil {
		return nil, nil
	}
	data, err := json.Marshal(c.fallback)
	if err != nil {
		return nil, fmt.Errorf("marshal fallback data: %w", err)
	}
	return data, nil
}
