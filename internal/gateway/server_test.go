package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nudge/internal/config"
	"nudge/internal/gateway/handlers"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Gateway.Host = "127.0.0.1"
	cfg.Gateway.Port = 8080
	return cfg
}

func TestNewServer(t *testing.T) {
	server := NewServer(testConfig(), nil, "v1.0.0-test")

	if server == nil {
		t.Fatal("NewServer returned nil")
	}

	if server.router == nil { //nolint:staticcheck // SA5011: Check above ensures non-nil
		t.Error("router is nil")
	}

	if server.apiRouter == nil { //nolint:staticcheck // SA5011: Check above ensures non-nil
		t.Error("apiRouter is nil")
	}
}

func TestServerHealthEndpoint(t *testing.T) {
	server := NewServer(testConfig(), nil, "v1.0.0-test")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp handlers.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("status = %s, want ok", resp.Status)
	}
	if resp.Version != "v1.0.0-test" {
		t.Errorf("version = %s, want v1.0.0-test", resp.Version)
	}
}

func TestServerChatRouteRegistered(t *testing.T) {
	server := NewServer(testConfig(), nil, "v1.0.0-test")

	// No engine wired: a valid request body should reach the chat handler
	// and fail with 503, not 404.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
		bytes.NewReader([]byte(`{"chatInput": "hello"}`)))
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
