package engine

import (
	"encoding/json"
	"strings"
)

// envelope is the JSON shape the model is instructed to return. selectedTool
// and parameters are accepted as aliases for tool and toolParams.
type envelope struct {
	AIResponseText string         `json:"aiResponseText"`
	Tool           string         `json:"tool"`
	SelectedTool   string         `json:"selectedTool"`
	ToolParams     map[string]any `json:"toolParams"`
	Parameters     map[string]any `json:"parameters"`
}

// parsedReply is the result of interpreting raw model output.
type parsedReply struct {
	// Text is the conversational reply; falls back to the raw model output
	// when no structured envelope could be decoded.
	Text string

	// Tool and Params carry the parsed invocation, empty/nil when absent.
	Tool   string
	Params map[string]any

	// Fields holds the decoded envelope's remaining top-level fields so
	// that dispatcher output can take precedence over anything the model
	// claimed about its own tool result.
	Fields map[string]any

	// Structured reports whether an envelope was decoded.
	Structured bool
}

// parseReply extracts the JSON envelope embedded in free-form model text.
// It takes the span from the first '{' through the last '}' and attempts a
// structural decode. Any failure degrades to a plain-text reply; parseReply
// never returns an error and never panics.
func parseReply(raw string) parsedReply {
	fallback := parsedReply{Text: raw}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return fallback
	}

	span := raw[start : end+1]

	var env envelope
	if err := json.Unmarshal([]byte(span), &env); err != nil {
		return fallback
	}

	var fields map[string]any
	_ = json.Unmarshal([]byte(span), &fields)

	tool := env.Tool
	if tool == "" {
		tool = env.SelectedTool
	}
	params := env.ToolParams
	if params == nil {
		params = env.Parameters
	}

	text := env.AIResponseText
	if text == "" {
		text = raw
	}

	return parsedReply{
		Text:       text,
		Tool:       tool,
		Params:     params,
		Fields:     fields,
		Structured: true,
	}
}

// claimedString returns a string field the model supplied in its envelope.
// Used only as a fallback where the dispatcher produced nothing.
func (p parsedReply) claimedString(key string) string {
	if p.Fields == nil {
		return ""
	}
	s, _ := p.Fields[key].(string)
	return s
}
