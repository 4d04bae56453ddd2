// Package v1 implements the v1 HTTP API.
package v1

import (
	"nudge/internal/engine"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	ChatInput    string                `json:"chatInput"`
	ChatHistory  []engine.HistoryEntry `json:"chatHistory,omitempty"`
	ContextItem  *engine.ContextItem   `json:"contextItem,omitempty"`
	CurrentDate  string                `json:"currentDate,omitempty"`
	Tone         string                `json:"tone,omitempty"`
	ExistingData any                   `json:"existingData,omitempty"`
	MasterPrompt string                `json:"masterPrompt,omitempty"`
}

// Error codes used in plain error envelopes.
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
