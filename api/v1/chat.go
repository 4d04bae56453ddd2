package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"nudge/internal/actions"
	"nudge/internal/engine"
	"nudge/internal/gateway/handlers"
	"nudge/internal/provider"
	"nudge/pkg/logger"
)

// HandleChat handles a single chat turn.
func (r *Router) HandleChat(w http.ResponseWriter, req *http.Request) {
	var chatReq ChatRequest
	if err := json.NewDecoder(req.Body).Decode(&chatReq); err != nil {
		handlers.SendError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body")
		return
	}

	if chatReq.ChatInput == "" {
		handlers.SendError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "chatInput is required")
		return
	}

	if r.engine == nil {
		handlers.SendError(w, http.StatusServiceUnavailable, handlers.ErrCodeServiceUnavailable, "Engine not available")
		return
	}

	result, err := r.engine.HandleTurn(req.Context(), engine.ChatTurn{
		Message:      chatReq.ChatInput,
		History:      chatReq.ChatHistory,
		ContextItem:  chatReq.ContextItem,
		CurrentDate:  chatReq.CurrentDate,
		Tone:         chatReq.Tone,
		MasterPrompt: chatReq.MasterPrompt,
	})
	if err != nil {
		r.sendUpstreamError(w, err)
		return
	}

	handlers.SendJSON(w, http.StatusOK, result)
}

// sendUpstreamError maps an upstream failure to an HTTP status and an
// ActionResult-shaped error envelope. The caller never sees a bare
// transport error.
func (r *Router) sendUpstreamError(w http.ResponseWriter, err error) {
	details, text := actions.Classify(err, "")

	logger.Get().WithLevel(levelFor(err)).
		Err(err).
		Str("errorCode", details.ErrorCode).
		Bool("retryable", details.Retryable).
		Msg("Chat turn failed")

	handlers.SendJSON(w, statusFor(err), engine.ActionResult{
		AIResponseText: text,
		ErrorDetails:   details,
	})
}

// statusFor maps an error to the HTTP status of the response envelope.
func statusFor(err error) int {
	var pe *provider.ProviderError
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError
	}

	switch pe.Code {
	case provider.ErrCodeAuthFailed:
		return http.StatusUnauthorized
	case provider.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case provider.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case provider.ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// levelFor logs retryable upstream failures as warnings, everything else
// as errors.
func levelFor(err error) zerolog.Level {
	if provider.IsRetryable(err) {
		return zerolog.WarnLevel
	}
	return zerolog.ErrorLevel
}
