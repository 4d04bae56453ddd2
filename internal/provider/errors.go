package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode defines provider error codes.
type ErrorCode string

const (
	ErrCodeAuthFailed         ErrorCode = "AUTH_FAILED"         // invalid or expired credentials
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"        // too many requests
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"     // malformed request
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE" // network or connectivity failure
	ErrCodeUnknown            ErrorCode = "UNKNOWN"             // unclassified upstream failure
)

// ProviderError is a structured error for provider operations.
type ProviderError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Provider  string    `json:"provider"`
	Status    int       `json:"status,omitempty"`
	Retryable bool      `json:"retryable"`
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

// NewProviderError creates a new ProviderError.
func NewProviderError(code ErrorCode, message, provider string, retryable bool) *ProviderError {
	return &ProviderError{
		Code:      code,
		Message:   message,
		Provider:  provider,
		Retryable: retryable,
	}
}

// ClassifyStatus maps an upstream HTTP status code to a structured error.
// 401 is an authentication failure (not retryable), 429 means the service is
// busy (retryable after backoff), other 4xx indicate a malformed request
// (not retryable), and everything else is treated as a transient upstream
// failure (retryable).
func ClassifyStatus(status int, message, providerName string) *ProviderError {
	pe := &ProviderError{
		Message:  message,
		Provider: providerName,
		Status:   status,
	}

	switch {
	case status == http.StatusUnauthorized:
		pe.Code = ErrCodeAuthFailed
		pe.Retryable = false
	case status == http.StatusTooManyRequests:
		pe.Code = ErrCodeRateLimited
		pe.Retryable = true
	case status >= 400 && status < 500:
		pe.Code = ErrCodeInvalidRequest
		pe.Retryable = false
	default:
		pe.Code = ErrCodeUnknown
		pe.Retryable = true
	}

	return pe
}

// NewConnectionError wraps a network-level failure as a retryable
// service-unavailable error.
func NewConnectionError(providerName string, cause error) *ProviderError {
	return &ProviderError{
		Code:      ErrCodeServiceUnavailable,
		Message:   cause.Error(),
		Provider:  providerName,
		Retryable: true,
	}
}

// IsRetryable reports whether err is a provider error the caller may retry.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
