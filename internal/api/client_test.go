package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string, cfg Config) *Client {
	t.Helper()

	cfg.BaseURL = baseURL
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	if err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestNewClient_DefaultValues(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://example.com"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.httpClient == nil {
		t.Fatal("httpClient is nil")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
	if client.userAgent != DefaultUserAgent {
		t.Errorf("userAgent = %q, want %q", client.userAgent, DefaultUserAgent)
	}
	if client.ClientID() != "default" {
		t.Errorf("ClientID() = %q, want %q", client.ClientID(), "default")
	}
}

func TestGet_SendsHeaders(t *testing.T) {
	var gotUserAgent, gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{APIKey: "secret-key", UserAgent: "TestSDK/0.1"})

	if err := client.Get(context.Background(), "/v1/test", nil, nil, nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if gotUserAgent != "TestSDK/0.1" {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, "TestSDK/0.1")
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestGet_NoAuthorizationWithoutAPIKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})

	if err := client.Get(context.Background(), "/v1/test", nil, nil, nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestGet_DecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"dymo","count":3}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})

	var result struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := client.Get(context.Background(), "/v1/test", nil, nil, &result); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if result.Name != "dymo" || result.Count != 3 {
		t.Errorf("result = %+v, want {dymo 3}", result)
	}
}

func TestGet_MalformedJSONReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})

	var result map[string]any
	if err := client.Get(context.Background(), "/v1/test", nil, nil, &result); err == nil {
		t.Error("expected decode error")
	}
}

func TestGet_RequestPacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// 50 rps, burst 1: the second request must wait ~20ms.
	client := newTestClient(t, server.URL, Config{RequestsPerSecond: 50, RequestBurst: 1})

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := client.Get(context.Background(), "/v1/test", nil, nil, nil); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("two paced requests took %v, want >= ~20ms", elapsed)
	}
}

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantMessage string
	}{
		{"error field", 400, `{"error":"bad input"}`, "bad input"},
		{"message field", 500, `{"message":"boom"}`, "boom"},
		{"plain text", 502, `upstream down`, "upstream down"},
		{"empty body", 503, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseErrorBody(tt.statusCode, []byte(tt.body))
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}
