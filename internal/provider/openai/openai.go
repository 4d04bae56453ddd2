// Package openai implements the Provider interface for OpenAI-compatible
// chat completion endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"nudge/internal/provider"
	"nudge/pkg/logger"
)

// Client implements provider.Provider against an OpenAI-compatible API.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

// New creates a new OpenAI-compatible provider client.
func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "openai"
}

// Chat sends a chat completion request and returns the response.
func (c *Client) Chat(ctx context.Context, req provider.ChatRequest) (*provider.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	apiReq := chatCompletionRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for _, msg := range req.Messages {
		apiReq.Messages = append(apiReq.Messages, chatMessage{Role: msg.Role, Content: msg.Content})
	}

	data, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.endpoint + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logger.Debug().Str("model", model).Int("messages", len(apiReq.Messages)).Msg("Chat completion request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, provider.NewConnectionError(c.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.NewConnectionError(c.Name(), err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("Upstream error response")
		return nil, provider.ClassifyStatus(resp.StatusCode, upstreamMessage(resp.StatusCode, body), c.Name())
	}

	var apiResp chatCompletionResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		logger.Error().Err(err).Str("body", string(body)).Msg("Failed to parse completion response")
		return nil, provider.ClassifyStatus(resp.StatusCode, "invalid response body", c.Name())
	}

	// A response without the expected content path degrades to an empty
	// string rather than an error.
	result := &provider.ChatResponse{}
	if len(apiResp.Choices) > 0 {
		result.Content = apiResp.Choices[0].Message.Content
	}
	if apiResp.Usage != nil {
		result.Usage = &provider.Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		}
	}

	return result, nil
}

// upstreamMessage extracts a human-readable message from an error body.
func upstreamMessage(status int, body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return fmt.Sprintf("upstream returned status %d", status)
}
