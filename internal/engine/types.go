// Package engine orchestrates a single chat turn: identity short-circuit,
// prompt construction, the upstream completion call, reply parsing, and tool
// dispatch. All state is request-local; nothing survives across turns except
// what the caller echoes back as history or context item.
package engine

import (
	"nudge/internal/actions"
)

// HistoryEntry is one prior turn of the conversation.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContextItem is a back-reference to the entity the previous turn concerned.
// When present, follow-up requests prefer update tools over create tools.
type ContextItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ChatTurn is the input for one request.
type ChatTurn struct {
	Message      string
	History      []HistoryEntry
	ContextItem  *ContextItem
	CurrentDate  string
	Tone         string
	MasterPrompt string
}

// ActionResult is the output contract returned to the caller. Exactly one of
// ActionMetadata or ErrorDetails is populated per tool attempt, and
// AIResponseText is always present.
type ActionResult struct {
	AIResponseText  string                `json:"aiResponseText"`
	ActionMetadata  map[string]any        `json:"actionMetadata,omitempty"`
	ContextItemID   string                `json:"contextItemId,omitempty"`
	ContextItemType string                `json:"contextItemType,omitempty"`
	UpdatedItemType string                `json:"updatedItemType,omitempty"`
	ActionIcon      string                `json:"actionIcon,omitempty"`
	MultipleActions []actions.MultiAction `json:"multipleActions,omitempty"`
	ErrorDetails    *actions.ErrorDetails `json:"errorDetails,omitempty"`
}
