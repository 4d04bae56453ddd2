// Package provider defines the LLM provider interface and types.
package provider

import "context"

// Provider defines the interface for LLM completion providers.
// A single Chat call is the only blocking operation the engine performs;
// timeout enforcement belongs to the underlying transport.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Chat sends a chat completion request and returns the response.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
