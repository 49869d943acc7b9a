package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/dymoapi/client-go/ratelimit"
)

// Transport defaults.
const (
	DefaultBaseURL   = "https://api.tpeoficial.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "DymoAPISDK/1.0.0 (Go)"
)

// Config configures the API client.
type Config struct {
	// BaseURL is the API root, without trailing slash.
	BaseURL string
	// APIKey is optional; the public endpoints accept unauthenticated
	// requests.
	APIKey string
	// UserAgent overrides the default SDK user agent.
	UserAgent string
	// ClientID keys rate-limit state. Defaults to "default".
	ClientID string
	// HTTPClient is the transport used for all requests.
	HTTPClient *http.Client
	// Logger receives retry/fallback/rate-limit diagnostics.
	Logger *slog.Logger
	// Tracker is the shared rate-limit tracker.
	Tracker *ratelimit.Tracker
	// Resilience controls retry, backoff and fallback behavior.
	Resilience ResilienceConfig
	// RequestsPerSecond enables client-side request pacing when > 0.
	RequestsPerSecond float64
	// RequestBurst is the pacing burst size. Defaults to 1.
	RequestBurst int
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	resilience *Manager
}

// NewClient creates a new API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "default"
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.RequestBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
		limiter:    limiter,
		resilience: NewManager(cfg.Resilience, clientID, cfg.Tracker, logger),
	}, nil
}

// Stats returns a snapshot of the resilience counters.
func (c *Client) Stats() Stats {
	return c.resilience.Stats()
}

// ClientID returns the identifier used to key rate-limit state.
func (c *Client) ClientID() string {
	return c.resilience.ClientID()
}

// Get issues a GET request against path with the given query parameters and
// decodes the JSON response into result. fallback, when non-nil and fallback
// substitution is enabled, replaces the response body on exhausted failures.
func (c *Client) Get(ctx context.Context, path string, query url.Values, fallback []byte, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	body, err := c.resilience.Execute(ctx, c.httpClient, req, fallback)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
