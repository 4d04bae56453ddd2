package engine

import (
	"context"

	"github.com/rs/zerolog"

	"nudge/internal/actions"
	"nudge/internal/provider"
)

// Config holds engine tuning parameters.
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// Engine processes one chat turn end to end. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	provider   provider.Provider
	dispatcher *actions.Dispatcher
	cfg        Config
	log        zerolog.Logger
}

// New creates an engine backed by the given provider and dispatcher.
func New(p provider.Provider, d *actions.Dispatcher, cfg Config, log zerolog.Logger) *Engine {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Engine{provider: p, dispatcher: d, cfg: cfg, log: log}
}

// HandleTurn runs the pipeline for one chat turn: identity short-circuit,
// prompt build, a single awaited upstream call, reply parsing, and tool
// dispatch. Upstream failures are returned as-is for the transport layer to
// classify; everything downstream of a successful completion produces a
// well-formed ActionResult.
func (e *Engine) HandleTurn(ctx context.Context, turn ChatTurn) (*ActionResult, error) {
	if isIdentityQuestion(turn.Message) {
		e.log.Info().Msg("Identity question short-circuited before upstream call")
		return &ActionResult{
			AIResponseText: IdentityReply,
			ActionIcon:     actions.IconInfo,
		}, nil
	}

	system := turn.MasterPrompt
	if system == "" {
		system = BuildSystemPrompt(turn)
	}

	resp, err := e.provider.Chat(ctx, provider.ChatRequest{
		Model:       e.cfg.Model,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: system},
			{Role: provider.RoleUser, Content: turn.Message},
		},
	})
	if err != nil {
		return nil, err
	}

	parsed := parseReply(resp.Content)
	if !parsed.Structured {
		e.log.Debug().Msg("Model reply had no decodable envelope, degrading to plain text")
		return &ActionResult{AIResponseText: parsed.Text}, nil
	}

	frag := e.dispatcher.Execute(parsed.Tool, parsed.Params)

	return e.assemble(parsed, frag), nil
}

// assemble merges the dispatcher's fragment over the model's own envelope
// fields. The engine's validated computation always wins; model-claimed
// values are used only where the dispatcher produced nothing.
func (e *Engine) assemble(parsed parsedReply, frag actions.Fragment) *ActionResult {
	result := &ActionResult{AIResponseText: parsed.Text}

	if frag.ErrorDetails != nil {
		result.ErrorDetails = frag.ErrorDetails
		if result.AIResponseText == "" {
			result.AIResponseText = frag.ErrorText
		}
		return result
	}

	result.ActionMetadata = frag.ActionMetadata
	result.MultipleActions = frag.MultipleActions

	result.ContextItemID = frag.ContextItemID
	if result.ContextItemID == "" && frag.Empty() {
		result.ContextItemID = parsed.claimedString("contextItemId")
	}
	result.ContextItemType = frag.ContextItemType
	if result.ContextItemType == "" && frag.Empty() {
		result.ContextItemType = parsed.claimedString("contextItemType")
	}
	result.UpdatedItemType = frag.UpdatedItemType
	result.ActionIcon = frag.ActionIcon
	if result.ActionIcon == "" && frag.Empty() {
		result.ActionIcon = parsed.claimedString("actionIcon")
	}

	return result
}
