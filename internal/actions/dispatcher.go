// Package actions turns a parsed tool invocation into a validated, typed
// action fragment. Each tool variant decodes its own strongly-typed
// parameter record from the generic parameter mapping, validates it, mints
// entity identifiers where needed, and returns either a success fragment or
// a typed error. Nothing in this package persists anything; the fragment is
// metadata describing the action for the caller to act on.
package actions

import (
	"time"

	"github.com/rs/zerolog"

	"nudge/internal/ident"
)

// Tool identifies an action variant the model may request.
type Tool string

// The fixed variant set.
const (
	ToolCreateTask         Tool = "createTask"
	ToolUpdateTask         Tool = "updateTask"
	ToolCreateReminder     Tool = "createReminder"
	ToolUpdateReminder     Tool = "updateReminder"
	ToolTrackExpenses      Tool = "trackExpenses"
	ToolCreateGoal         Tool = "createGoal"
	ToolUpdateGoal         Tool = "updateGoal"
	ToolCreateJournalEntry Tool = "createJournalEntry"
	ToolGeneralChat        Tool = "generalChat"
)

// ParseTool maps a tool name string onto the variant set.
func ParseTool(name string) (Tool, bool) {
	switch Tool(name) {
	case ToolCreateTask, ToolUpdateTask,
		ToolCreateReminder, ToolUpdateReminder,
		ToolTrackExpenses,
		ToolCreateGoal, ToolUpdateGoal,
		ToolCreateJournalEntry,
		ToolGeneralChat:
		return Tool(name), true
	}
	return "", false
}

// Entity type names used in contextItemType/updatedItemType.
const (
	EntityTask     = "task"
	EntityReminder = "reminder"
	EntityGoal     = "goal"
	EntityJournal  = "journal"
	EntityExpense  = "expense"
)

// Display icons per action.
const (
	IconTask     = "check-square"
	IconReminder = "bell"
	IconExpense  = "credit-card"
	IconGoal     = "target"
	IconJournal  = "book-open"
	IconChat     = "message-circle"
	IconInfo     = "info"
)

// MultiAction is one entry of a multi-entity result (batched expenses).
type MultiAction struct {
	Type string         `json:"type"`
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// ErrorDetails is the structured, user-safe error record surfaced to callers.
type ErrorDetails struct {
	Retryable       bool   `json:"retryable"`
	ErrorCode       string `json:"errorCode"`
	Timestamp       string `json:"timestamp"`
	SuggestedAction string `json:"suggestedAction,omitempty"`
	Tool            string `json:"tool,omitempty"`
}

// Fragment is the partial action result a single tool execution contributes.
// Exactly one of ActionMetadata or ErrorDetails is populated per attempt;
// a zero Fragment means dispatch was skipped entirely.
type Fragment struct {
	ActionMetadata  map[string]any `json:"actionMetadata,omitempty"`
	ContextItemID   string         `json:"contextItemId,omitempty"`
	ContextItemType string         `json:"contextItemType,omitempty"`
	UpdatedItemType string         `json:"updatedItemType,omitempty"`
	ActionIcon      string         `json:"actionIcon,omitempty"`
	MultipleActions []MultiAction  `json:"multipleActions,omitempty"`
	ErrorDetails    *ErrorDetails  `json:"errorDetails,omitempty"`

	// ErrorText is a human-readable explanation for the failure, used by the
	// caller when the model did not supply its own response text.
	ErrorText string `json:"-"`
}

// Empty reports whether the fragment carries neither a result nor an error.
func (f Fragment) Empty() bool {
	return f.ActionMetadata == nil && f.ErrorDetails == nil && len(f.MultipleActions) == 0
}

// Dispatcher executes tool invocations. Logging goes through an injected
// logger rather than ambient global state so every attempt, success, and
// failure is recorded against the caller's context.
type Dispatcher struct {
	ids *ident.Generator
	log zerolog.Logger
}

// NewDispatcher creates a dispatcher with the given identifier generator
// and logger.
func NewDispatcher(ids *ident.Generator, log zerolog.Logger) *Dispatcher {
	if ids == nil {
		ids = ident.NewGenerator()
	}
	return &Dispatcher{ids: ids, log: log}
}

// Execute runs the named tool with the given parameters and returns the
// resulting fragment. A missing tool name or parameter mapping skips
// dispatch silently; every failure is classified into a structural error
// fragment. Execute never panics and never returns an error to the caller.
func (d *Dispatcher) Execute(toolName string, params map[string]any) Fragment {
	if toolName == "" || params == nil {
		d.log.Debug().Str("tool", toolName).Msg("Dispatch skipped: no tool or parameters")
		return Fragment{}
	}

	start := time.Now()
	d.log.Info().Str("tool", toolName).Interface("params", params).Msg("Executing action")

	frag, err := d.dispatch(toolName, params)
	if err != nil {
		details, text := Classify(err, toolName)
		d.log.Error().
			Err(err).
			Str("tool", toolName).
			Str("code", details.ErrorCode).
			Interface("params", params).
			Dur("duration", time.Since(start)).
			Msg("Action failed")
		return Fragment{ErrorDetails: details, ErrorText: text}
	}

	d.log.Info().
		Str("tool", toolName).
		Dur("duration", time.Since(start)).
		Msg("Action completed")
	return frag
}

// dispatch routes to the variant-specific validator and builder.
func (d *Dispatcher) dispatch(toolName string, params map[string]any) (Fragment, error) {
	tool, ok := ParseTool(toolName)
	if !ok {
		return Fragment{}, newToolError(CodeUnknownTool, Tool(toolName), params,
			"the requested tool is not recognized", "Try rephrasing your request.")
	}

	switch tool {
	case ToolCreateTask:
		return d.createTask(params)
	case ToolUpdateTask:
		return d.updateTask(params)
	case ToolCreateReminder:
		return d.createReminder(params)
	case ToolUpdateReminder:
		return d.updateReminder(params)
	case ToolTrackExpenses:
		return d.trackExpenses(params)
	case ToolCreateGoal:
		return d.createGoal(params)
	case ToolUpdateGoal:
		return d.updateGoal(params)
	case ToolCreateJournalEntry:
		return d.createJournalEntry(params)
	case ToolGeneralChat:
		return d.generalChat(params)
	}

	// Unreachable: ParseTool covers the variant set.
	return Fragment{}, newToolError(CodeUnknownTool, tool, params,
		"the requested tool is not recognized", "Try rephrasing your request.")
}
