package dymo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dymoapi/client-go/internal/api"
	"github.com/dymoapi/client-go/ratelimit"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// Stats is a snapshot of resilience counters: attempts issued, retries
// performed, fallback substitutions and rate-limit waits.
type Stats struct {
	Attempts       uint64
	Retries        uint64
	Fallbacks      uint64
	RateLimitWaits uint64
}

// Client is a Dymo API client. It is safe for concurrent use.
type Client struct {
	api      *api.Client
	tracker  *ratelimit.Tracker
	logger   *slog.Logger
	clientID string
}

// New creates a Dymo API client. An API key is optional: all public
// endpoints accept unauthenticated requests.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
		resilience: ResilienceConfig{
			RetryAttempts: api.DefaultRetryAttempts,
			RetryDelay:    api.DefaultRetryDelay,
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	clientID := cfg.clientID
	if clientID == "" {
		if cfg.apiKey != "" {
			clientID = cfg.apiKey
		} else {
			clientID = uuid.NewString()
		}
	}

	trackerOpts := []ratelimit.TrackerOption{ratelimit.WithLogger(logger)}
	if cfg.store != nil {
		trackerOpts = append(trackerOpts, ratelimit.WithStore(cfg.store))
	}
	tracker := ratelimit.NewTracker(trackerOpts...)

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     cfg.apiKey,
		UserAgent:  "DymoAPISDK/" + Version + " (Go)",
		ClientID:   clientID,
		HTTPClient: httpClient,
		Logger:     logger,
		Tracker:    tracker,
		Resilience: api.ResilienceConfig{
			FallbackEnabled: cfg.resilience.FallbackEnabled,
			RetryAttempts:   cfg.resilience.RetryAttempts,
			RetryDelay:      cfg.resilience.RetryDelay,
		},
		RequestsPerSecond: cfg.requestsPerSecond,
		RequestBurst:      cfg.requestBurst,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return &Client{
		api:      apiClient,
		tracker:  tracker,
		logger:   logger,
		clientID: clientID,
	}, nil
}

// ClientID returns the identifier used to key rate-limit state.
func (c *Client) ClientID() string {
	return c.clientID
}

// Stats returns a snapshot of the resilience counters.
func (c *Client) Stats() Stats {
	s := c.api.Stats()
	return Stats{
		Attempts:       s.Attempts,
		Retries:        s.Retries,
		Fallbacks:      s.Fallbacks,
		RateLimitWaits: s.RateLimitWaits,
	}
}

// RateLimitState returns the rate-limit state last observed for this
// client's identifier, and whether any state has been recorded yet.
func (c *Client) RateLimitState(ctx context.Context) (ratelimit.State, bool) {
	return c.tracker.State(ctx, c.clientID)
}
