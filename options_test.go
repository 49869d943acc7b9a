package dymo

import (
	"net/http"
	"testing"
	"time"

	"github.com/dymoapi/client-go/ratelimit"
)

func TestOptions_Apply(t *testing.T) {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	store := ratelimit.NewMemoryStore()
	logger := quietLogger()

	cfg := &clientConfig{}
	opts := []Option{
		WithBaseURL("https://example.com"),
		WithAPIKey("key"),
		WithHTTPClient(httpClient),
		WithTimeout(10 * time.Second),
		WithLogger(logger),
		WithClientID("tenant"),
		WithResilience(ResilienceConfig{FallbackEnabled: true, RetryAttempts: 5, RetryDelay: 2 * time.Second}),
		WithRateLimitStore(store),
		WithRequestRate(10, 2),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL != "https://example.com" {
		t.Errorf("baseURL = %q", cfg.baseURL)
	}
	if cfg.apiKey != "key" {
		t.Errorf("apiKey = %q", cfg.apiKey)
	}
	if cfg.httpClient != httpClient {
		t.Error("httpClient not applied")
	}
	if cfg.timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.timeout)
	}
	if cfg.logger != logger {
		t.Error("logger not applied")
	}
	if cfg.clientID != "tenant" {
		t.Errorf("clientID = %q", cfg.clientID)
	}
	if !cfg.resilience.FallbackEnabled || cfg.resilience.RetryAttempts != 5 || cfg.resilience.RetryDelay != 2*time.Second {
		t.Errorf("resilience = %+v", cfg.resilience)
	}
	if cfg.store != store {
		t.Error("store not applied")
	}
	if cfg.requestsPerSecond != 10 || cfg.requestBurst != 2 {
		t.Errorf("pacing = %v rps, burst %d", cfg.requestsPerSecond, cfg.requestBurst)
	}
}

func TestCallConfig_FallbackJSON(t *testing.T) {
	t.Run("no fallback", func(t *testing.T) {
		cfg := applyCallOptions(nil)
		data, err := cfg.fallbackJSON()
		if err != nil {
			t.Fatalf("fallbackJSON() error = %v", err)
		}
		if data != nil {
			t.Errorf("data = %q, want nil", data)
		}
	})

	t.Run("marshals payload", func(t *testing.T) {
		cfg := applyCallOptions([]CallOption{WithFallback(&EncryptedURL{Original: "https://x"})})
		data, err := cfg.fallbackJSON()
		if err != nil {
			t.Fatalf("fallbackJSON() error = %v", err)
		}
		want := `{"original":"https://x","code":"","encrypt":""}`
		if string(data) != want {
			t.Errorf("data = %s, want %s", data, want)
		}
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		cfg := applyCallOptions([]CallOption{WithFallback(func() {})})
		if _, err := cfg.fallbackJSON(); err == nil {
			t.Error("expected marshal error for a func value")
		}
	})
}
