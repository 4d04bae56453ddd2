package actions

import (
	"errors"
	"fmt"
)

// Validation error codes surfaced in ErrorDetails.ErrorCode.
const (
	CodeUnknownTool        = "UNKNOWN_TOOL"
	CodeInvalidParameters  = "INVALID_PARAMETERS"
	CodeIDGenerationFailed = "ID_GENERATION_FAILED"

	CodeMissingTaskDescription = "MISSING_TASK_DESCRIPTION"
	CodeMissingTaskID          = "MISSING_TASK_ID"
	CodeInvalidTaskIDFormat    = "INVALID_TASK_ID_FORMAT"
	CodeMissingTaskUpdates     = "MISSING_TASK_UPDATES"

	CodeMissingReminderTitle    = "MISSING_REMINDER_TITLE"
	CodeMissingReminderID       = "MISSING_REMINDER_ID"
	CodeInvalidReminderIDFormat = "INVALID_REMINDER_ID_FORMAT"
	CodeMissingReminderUpdates  = "MISSING_REMINDER_UPDATES"
	CodeInvalidReminderTime     = "INVALID_REMINDER_TIME"

	CodeMissingExpenses      = "MISSING_EXPENSES"
	CodeInvalidExpenseItem   = "INVALID_EXPENSE_ITEM"
	CodeInvalidExpenseAmount = "INVALID_EXPENSE_AMOUNT"

	CodeMissingGoalTitle    = "MISSING_GOAL_TITLE"
	CodeMissingGoalID       = "MISSING_GOAL_ID"
	CodeInvalidGoalIDFormat = "INVALID_GOAL_ID_FORMAT"
	CodeMissingGoalUpdates  = "MISSING_GOAL_UPDATES"
	CodeInvalidGoalTarget   = "INVALID_GOAL_TARGET"
	CodeInvalidGoalProgress = "INVALID_GOAL_PROGRESS"

	CodeMissingJournalContent = "MISSING_JOURNAL_CONTENT"
	CodeInvalidJournalMood    = "INVALID_JOURNAL_MOOD"
)

// ErrUnknownTool is the sentinel for dispatch of an unrecognized tool name.
var ErrUnknownTool = errors.New("unknown tool")

// ToolError is a typed validation failure raised at the dispatch boundary.
// It always carries the tool name and the original parameters so failures
// can be logged and classified with full context.
type ToolError struct {
	Code            string
	Tool            string
	Message         string
	SuggestedAction string
	Params          map[string]any
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Tool, e.Message, e.Code)
}

// Is allows errors.Is to match UNKNOWN_TOOL failures against ErrUnknownTool.
func (e *ToolError) Is(target error) bool {
	return target == ErrUnknownTool && e.Code == CodeUnknownTool
}

// newToolError creates a ToolError for the given tool and parameters.
func newToolError(code string, tool Tool, params map[string]any, message, suggested string) *ToolError {
	return &ToolError{
		Code:            code,
		Tool:            string(tool),
		Message:         message,
		SuggestedAction: suggested,
		Params:          params,
	}
}
