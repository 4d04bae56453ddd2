package actions

import (
	"strings"
)

// createReminderParams is the typed parameter record for createReminder.
type createReminderParams struct {
	Title         string
	ScheduledTime string
}

// decodeCreateReminder validates and decodes createReminder parameters.
func decodeCreateReminder(params map[string]any) (createReminderParams, error) {
	title, _ := stringParam(params, "title")
	title = strings.TrimSpace(title)
	if title == "" {
		return createReminderParams{}, newToolError(CodeMissingReminderTitle, ToolCreateReminder, params,
			"a reminder needs a title", "Please create it manually in the Reminders section.")
	}

	scheduled, ok := stringParam(params, "scheduledTime")
	if ok && scheduled != "" {
		if _, valid := parseWhen(scheduled); !valid {
			return createReminderParams{}, newToolError(CodeInvalidReminderTime, ToolCreateReminder, params,
				"the scheduled time is not a valid date or time", "Please create it manually in the Reminders section.")
		}
	}

	return createReminderParams{Title: title, ScheduledTime: scheduled}, nil
}

func (d *Dispatcher) createReminder(params map[string]any) (Fragment, error) {
	p, err := decodeCreateReminder(params)
	if err != nil {
		return Fragment{}, err
	}

	id, err := d.ids.Generate()
	if err != nil {
		return Fragment{}, err
	}

	metadata := map[string]any{
		"id":    id,
		"title": p.Title,
	}
	if p.ScheduledTime != "" {
		metadata["scheduledTime"] = p.ScheduledTime
	}

	return Fragment{
		ActionMetadata:  metadata,
		ContextItemID:   id,
		ContextItemType: EntityReminder,
		ActionIcon:      IconReminder,
	}, nil
}

// updateReminderParams is the typed parameter record for updateReminder.
type updateReminderParams struct {
	ID      string
	Updates map[string]any
}

// decodeUpdateReminder validates and decodes updateReminder parameters.
func decodeUpdateReminder(params map[string]any) (updateReminderParams, error) {
	id, ok := stringParam(params, "reminderId", "id")
	if !ok || id == "" {
		return updateReminderParams{}, newToolError(CodeMissingReminderID, ToolUpdateReminder, params,
			"no reminder id was provided", "Please edit the reminder manually in the Reminders section.")
	}
	if !validID(id) {
		return updateReminderParams{}, newToolError(CodeInvalidReminderIDFormat, ToolUpdateReminder, params,
			"the reminder id is not a valid identifier", "Please edit the reminder manually in the Reminders section.")
	}

	updates, ok := objectParam(params, "updates")
	if !ok {
		return updateReminderParams{}, newToolError(CodeMissingReminderUpdates, ToolUpdateReminder, params,
			"no updates were provided", "Please edit the reminder manually in the Reminders section.")
	}

	// A rescheduled time still has to parse.
	if v, ok := updates["scheduledTime"]; ok {
		s, isString := v.(string)
		if !isString {
			return updateReminderParams{}, newToolError(CodeInvalidReminderTime, ToolUpdateReminder, params,
				"the scheduled time is not a valid date or time", "Please edit the reminder manually in the Reminders section.")
		}
		if _, valid := parseWhen(s); !valid {
			return updateReminderParams{}, newToolError(CodeInvalidReminderTime, ToolUpdateReminder, params,
				"the scheduled time is not a valid date or time", "Please edit the reminder manually in the Reminders section.")
		}
	}

	return updateReminderParams{ID: id, Updates: updates}, nil
}

func (d *Dispatcher) updateReminder(params map[string]any) (Fragment, error) {
	p, err := decodeUpdateReminder(params)
	if err != nil {
		return Fragment{}, err
	}

	return Fragment{
		ActionMetadata: map[string]any{
			"id":      p.ID,
			"updates": p.Updates,
		},
		ContextItemID:   p.ID,
		ContextItemType: EntityReminder,
		UpdatedItemType: EntityReminder,
		ActionIcon:      IconReminder,
	}, nil
}
