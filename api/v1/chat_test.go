package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"nudge/internal/engine"
	"nudge/internal/provider"
)

// fakeEngine returns a canned result or error and records invocations.
type fakeEngine struct {
	result *engine.ActionResult
	err    error
	turns  []engine.ChatTurn
}

func (f *fakeEngine) HandleTurn(ctx context.Context, turn engine.ChatTurn) (*engine.ActionResult, error) {
	f.turns = append(f.turns, turn)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newChatRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/chat", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(eng TurnHandler, req *http.Request) *httptest.ResponseRecorder {
	router := NewRouter(eng)
	m := mux.NewRouter()
	router.RegisterRoutes(m)

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, req)
	return rr
}

func TestRouter_HandleChat_Success(t *testing.T) {
	fake := &fakeEngine{result: &engine.ActionResult{
		AIResponseText:  "Task added!",
		ActionMetadata:  map[string]any{"description": "buy milk"},
		ContextItemID:   "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
		ContextItemType: "task",
		ActionIcon:      "check-square",
	}}

	rr := serve(fake, newChatRequest(t, ChatRequest{
		ChatInput:   "add a task to buy milk",
		CurrentDate: "2024-03-01",
		Tone:        "casual",
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["aiResponseText"] != "Task added!" {
		t.Errorf("aiResponseText = %v", resp["aiResponseText"])
	}
	if resp["contextItemType"] != "task" {
		t.Errorf("contextItemType = %v", resp["contextItemType"])
	}
	if _, ok := resp["errorDetails"]; ok {
		t.Error("errorDetails should be absent on success")
	}

	if len(fake.turns) != 1 {
		t.Fatalf("engine called %d times, want 1", len(fake.turns))
	}
	turn := fake.turns[0]
	if turn.Message != "add a task to buy milk" || turn.Tone != "casual" || turn.CurrentDate != "2024-03-01" {
		t.Errorf("turn not forwarded: %+v", turn)
	}
}

func TestRouter_HandleChat_MissingChatInput(t *testing.T) {
	fake := &fakeEngine{result: &engine.ActionResult{}}

	rr := serve(fake, newChatRequest(t, ChatRequest{ChatInput: ""}))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if len(fake.turns) != 0 {
		t.Error("engine should not be called without chatInput")
	}
}

func TestRouter_HandleChat_InvalidJSON(t *testing.T) {
	fake := &fakeEngine{result: &engine.ActionResult{}}

	req := httptest.NewRequest("POST", "/api/v1/chat", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(fake, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestRouter_HandleChat_NoEngine(t *testing.T) {
	rr := serve(nil, newChatRequest(t, ChatRequest{ChatInput: "hello"}))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}

func TestRouter_HandleChat_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name          string
		err           *provider.ProviderError
		wantStatus    int
		wantCode      string
		wantRetryable bool
	}{
		{
			name:          "auth failed",
			err:           provider.NewProviderError(provider.ErrCodeAuthFailed, "bad key", "openai", false),
			wantStatus:    http.StatusUnauthorized,
			wantCode:      "AUTH_FAILED",
			wantRetryable: false,
		},
		{
			name:          "rate limited",
			err:           provider.NewProviderError(provider.ErrCodeRateLimited, "busy", "openai", true),
			wantStatus:    http.StatusTooManyRequests,
			wantCode:      "RATE_LIMITED",
			wantRetryable: true,
		},
		{
			name:          "invalid request",
			err:           provider.NewProviderError(provider.ErrCodeInvalidRequest, "bad payload", "openai", false),
			wantStatus:    http.StatusBadRequest,
			wantCode:      "INVALID_REQUEST",
			wantRetryable: false,
		},
		{
			name:          "service unavailable",
			err:           provider.NewProviderError(provider.ErrCodeServiceUnavailable, "connection refused", "openai", true),
			wantStatus:    http.StatusServiceUnavailable,
			wantCode:      "SERVICE_UNAVAILABLE",
			wantRetryable: true,
		},
		{
			name:          "unknown",
			err:           provider.NewProviderError(provider.ErrCodeUnknown, "boom", "openai", true),
			wantStatus:    http.StatusInternalServerError,
			wantCode:      "UNKNOWN",
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEngine{err: tt.err}

			rr := serve(fake, newChatRequest(t, ChatRequest{ChatInput: "hello"}))

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var resp engine.ActionResult
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.AIResponseText == "" {
				t.Error("aiResponseText must always be present on error responses")
			}
			if resp.ErrorDetails == nil {
				t.Fatal("errorDetails missing")
			}
			if resp.ErrorDetails.ErrorCode != tt.wantCode {
				t.Errorf("errorCode = %s, want %s", resp.ErrorDetails.ErrorCode, tt.wantCode)
			}
			if resp.ErrorDetails.Retryable != tt.wantRetryable {
				t.Errorf("retryable = %v, want %v", resp.ErrorDetails.Retryable, tt.wantRetryable)
			}
			// The raw upstream message never leaks into the reply text.
			if bytes.Contains([]byte(resp.AIResponseText), []byte(tt.err.Message)) {
				t.Errorf("upstream message leaked into aiResponseText: %q", resp.AIResponseText)
			}
		})
	}
}
