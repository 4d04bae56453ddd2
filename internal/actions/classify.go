package actions

import (
	"errors"
	"time"

	"nudge/internal/ident"
	"nudge/internal/provider"
)

// Classify maps any failure raised during tool dispatch or the upstream call
// into a structured, user-safe error record plus a human-readable
// explanation. Internal details (stack traces, raw upstream bodies) never
// reach the returned record.
func Classify(err error, tool string) (*ErrorDetails, string) {
	now := time.Now().UTC().Format(time.RFC3339)

	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return &ErrorDetails{
			Retryable:       false,
			ErrorCode:       toolErr.Code,
			Timestamp:       now,
			SuggestedAction: toolErr.SuggestedAction,
			Tool:            toolErr.Tool,
		}, "I couldn't complete that action: " + toolErr.Message + "."
	}

	var genErr *ident.GenerationError
	if errors.As(err, &genErr) {
		return &ErrorDetails{
			Retryable:       true,
			ErrorCode:       CodeIDGenerationFailed,
			Timestamp:       genErr.Timestamp.Format(time.RFC3339),
			SuggestedAction: "Please try again in a moment.",
			Tool:            tool,
		}, "Something went wrong on my side while saving that. Please try again in a moment."
	}

	var provErr *provider.ProviderError
	if errors.As(err, &provErr) {
		return &ErrorDetails{
			Retryable:       provErr.Retryable,
			ErrorCode:       string(provErr.Code),
			Timestamp:       now,
			SuggestedAction: providerSuggestion(provErr.Code),
			Tool:            tool,
		}, providerApology(provErr.Code)
	}

	return &ErrorDetails{
		Retryable:       false,
		ErrorCode:       "EXECUTION_FAILED",
		Timestamp:       now,
		SuggestedAction: "Please try again, or do it manually.",
		Tool:            tool,
	}, "Sorry, I ran into a problem completing that."
}

// providerSuggestion maps an upstream error class to a remedial hint.
func providerSuggestion(code provider.ErrorCode) string {
	switch code {
	case provider.ErrCodeAuthFailed:
		return "Check the configured API credentials."
	case provider.ErrCodeRateLimited:
		return "Wait a moment before sending another message."
	case provider.ErrCodeInvalidRequest:
		return "Try rephrasing your message."
	case provider.ErrCodeServiceUnavailable:
		return "Check your connection and try again shortly."
	default:
		return "Please try again shortly."
	}
}

// providerApology maps an upstream error class to the user-facing reply text.
func providerApology(code provider.ErrorCode) string {
	switch code {
	case provider.ErrCodeAuthFailed:
		return "I can't reach my language service right now because its credentials were rejected."
	case provider.ErrCodeRateLimited:
		return "I'm handling a lot of requests at the moment. Please give me a few seconds and try again."
	case provider.ErrCodeInvalidRequest:
		return "I couldn't process that message. Could you try phrasing it differently?"
	case provider.ErrCodeServiceUnavailable:
		return "I'm having trouble reaching my language service. Please try again shortly."
	default:
		return "Something unexpected went wrong while thinking about that. Please try again."
	}
}
