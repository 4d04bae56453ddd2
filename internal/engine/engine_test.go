package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nudge/internal/actions"
	"nudge/internal/ident"
	"nudge/internal/provider"
)

// fakeProvider returns a canned reply and records the requests it receives.
type fakeProvider struct {
	reply    string
	err      error
	requests []provider.ChatRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(ctx context.Context, req provider.ChatRequest) (*provider.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &provider.ChatResponse{Content: f.reply}, nil
}

func newTestEngine(p provider.Provider) *Engine {
	d := actions.NewDispatcher(ident.NewGenerator(), zerolog.Nop())
	return New(p, d, DefaultConfig(), zerolog.Nop())
}

func TestHandleTurnIdentityShortCircuit(t *testing.T) {
	fake := &fakeProvider{reply: "should never be used"}
	e := newTestEngine(fake)

	result, err := e.HandleTurn(context.Background(), ChatTurn{Message: "WHO MADE you?"})
	require.NoError(t, err)
	assert.Equal(t, IdentityReply, result.AIResponseText)
	assert.Equal(t, "info", result.ActionIcon)
	assert.Empty(t, fake.requests, "no upstream call on identity short-circuit")
}

func TestHandleTurnDispatchesTool(t *testing.T) {
	fake := &fakeProvider{reply: `{"aiResponseText": "Task added!", "tool": "createTask", "toolParams": {"description": "buy milk"}}`}
	e := newTestEngine(fake)

	result, err := e.HandleTurn(context.Background(), ChatTurn{Message: "add a task to buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "Task added!", result.AIResponseText)
	require.NotNil(t, result.ActionMetadata)
	assert.Equal(t, "buy milk", result.ActionMetadata["description"])
	assert.Equal(t, "task", result.ContextItemType)
	assert.True(t, ident.Valid(result.ContextItemID))
	assert.Nil(t, result.ErrorDetails)
}

func TestHandleTurnSendsSystemAndUserMessages(t *testing.T) {
	fake := &fakeProvider{reply: `{"aiResponseText": "hi", "tool": "generalChat", "toolParams": {}}`}
	e := newTestEngine(fake)

	_, err := e.HandleTurn(context.Background(), ChatTurn{Message: "hello", CurrentDate: "2024-03-01"})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	msgs := fake.requests[0].Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, provider.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "createTask")
	assert.Equal(t, provider.RoleUser, msgs[1].Role)
	assert.Equal(t, "hello", msgs[1].Content)
}

func TestHandleTurnMasterPromptBypassesBuilder(t *testing.T) {
	fake := &fakeProvider{reply: `{"aiResponseText": "hi", "tool": "generalChat", "toolParams": {}}`}
	e := newTestEngine(fake)

	_, err := e.HandleTurn(context.Background(), ChatTurn{
		Message:      "hello",
		MasterPrompt: "You are a rubber duck.",
	})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "You are a rubber duck.", fake.requests[0].Messages[0].Content)
}

func TestHandleTurnMalformedReplyDegradesToPlainText(t *testing.T) {
	fake := &fakeProvider{reply: "Sorry, I can't produce JSON today."}
	e := newTestEngine(fake)

	result, err := e.HandleTurn(context.Background(), ChatTurn{Message: "add a task"})
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I can't produce JSON today.", result.AIResponseText)
	assert.Nil(t, result.ActionMetadata)
	assert.Nil(t, result.ErrorDetails)
}

func TestHandleTurnToolValidationFailure(t *testing.T) {
	fake := &fakeProvider{reply: `{"aiResponseText": "On it!", "tool": "updateGoal", "toolParams": {"goalId": "bad-id", "updates": {"progress": 5}}}`}
	e := newTestEngine(fake)

	result, err := e.HandleTurn(context.Background(), ChatTurn{Message: "bump my goal"})
	require.NoError(t, err)
	require.NotNil(t, result.ErrorDetails)
	assert.Equal(t, actions.CodeInvalidGoalIDFormat, result.ErrorDetails.ErrorCode)
	assert.Nil(t, result.ActionMetadata)
	assert.Equal(t, "On it!", result.AIResponseText)
}

func TestHandleTurnEnvelopeWithoutToolSkipsDispatch(t *testing.T) {
	fake := &fakeProvider{reply: `{"aiResponseText": "Just chatting."}`}
	e := newTestEngine(fake)

	result, err := e.HandleTurn(context.Background(), ChatTurn{Message: "how are you"})
	require.NoError(t, err)
	assert.Equal(t, "Just chatting.", result.AIResponseText)
	assert.Nil(t, result.ActionMetadata)
	assert.Nil(t, result.ErrorDetails)
}

func TestHandleTurnDispatcherOutputTakesPrecedence(t *testing.T) {
	// The model claims a contextItemId; the engine's own dispatch wins.
	fake := &fakeProvider{reply: `{"aiResponseText": "done", "tool": "createTask", "toolParams": {"description": "x"}, "contextItemId": "model-made-this-up", "actionIcon": "sparkles"}`}
	e := newTestEngine(fake)

	result, err := e.HandleTurn(context.Background(), ChatTurn{Message: "add"})
	require.NoError(t, err)
	assert.NotEqual(t, "model-made-this-up", result.ContextItemID)
	assert.True(t, ident.Valid(result.ContextItemID))
	assert.Equal(t, actions.IconTask, result.ActionIcon)
}

func TestHandleTurnUpstreamErrorPropagates(t *testing.T) {
	upstream := provider.NewProviderError(provider.ErrCodeRateLimited, "busy", "fake", true)
	fake := &fakeProvider{err: upstream}
	e := newTestEngine(fake)

	_, err := e.HandleTurn(context.Background(), ChatTurn{Message: "hello"})
	require.Error(t, err)

	var pe *provider.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, provider.ErrCodeRateLimited, pe.Code)
}
