package actions

import (
	"strings"
)

// createJournalParams is the typed parameter record for createJournalEntry.
type createJournalParams struct {
	Content string
	Mood    string
	Date    string
}

// decodeCreateJournal validates and decodes createJournalEntry parameters.
func decodeCreateJournal(params map[string]any) (createJournalParams, error) {
	content, _ := stringParam(params, "content")
	content = strings.TrimSpace(content)
	if content == "" {
		return createJournalParams{}, newToolError(CodeMissingJournalContent, ToolCreateJournalEntry, params,
			"a journal entry needs some content", "Please write it manually in the Journal section.")
	}

	p := createJournalParams{Content: content}

	if v, ok := params["mood"]; ok {
		mood, isString := v.(string)
		if !isString {
			return createJournalParams{}, newToolError(CodeInvalidJournalMood, ToolCreateJournalEntry, params,
				"the mood must be a short text label", "Please write it manually in the Journal section.")
		}
		p.Mood = mood
	}

	p.Date, _ = stringParam(params, "date")

	return p, nil
}

func (d *Dispatcher) createJournalEntry(params map[string]any) (Fragment, error) {
	p, err := decodeCreateJournal(params)
	if err != nil {
		return Fragment{}, err
	}

	id, err := d.ids.Generate()
	if err != nil {
		return Fragment{}, err
	}

	metadata := map[string]any{
		"id":      id,
		"content": p.Content,
	}
	if p.Mood != "" {
		metadata["mood"] = p.Mood
	}
	if p.Date != "" {
		metadata["date"] = p.Date
	}

	return Fragment{
		ActionMetadata:  metadata,
		ContextItemID:   id,
		ContextItemType: EntityJournal,
		ActionIcon:      IconJournal,
	}, nil
}
