package actions

import (
	"strings"
)

// createTaskParams is the typed parameter record for createTask.
type createTaskParams struct {
	Description string
	Priority    string
	DueDate     string
}

// decodeCreateTask validates and decodes createTask parameters.
func decodeCreateTask(params map[string]any) (createTaskParams, error) {
	desc, _ := stringParam(params, "description")
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return createTaskParams{}, newToolError(CodeMissingTaskDescription, ToolCreateTask, params,
			"a task needs a description", "Please create it manually in the Tasks section.")
	}

	priority, ok := stringParam(params, "priority")
	if !ok || priority == "" {
		priority = "medium"
	}

	dueDate, _ := stringParam(params, "dueDate")

	return createTaskParams{Description: desc, Priority: priority, DueDate: dueDate}, nil
}

func (d *Dispatcher) createTask(params map[string]any) (Fragment, error) {
	p, err := decodeCreateTask(params)
	if err != nil {
		return Fragment{}, err
	}

	id, err := d.ids.Generate()
	if err != nil {
		return Fragment{}, err
	}

	metadata := map[string]any{
		"id":          id,
		"description": p.Description,
		"priority":    p.Priority,
	}
	if p.DueDate != "" {
		metadata["dueDate"] = p.DueDate
	}

	return Fragment{
		ActionMetadata:  metadata,
		ContextItemID:   id,
		ContextItemType: EntityTask,
		ActionIcon:      IconTask,
	}, nil
}

// updateTaskParams is the typed parameter record for updateTask.
type updateTaskParams struct {
	ID      string
	Updates map[string]any
}

// decodeUpdateTask validates and decodes updateTask parameters.
// No identifier is minted: the caller-supplied id is re-validated instead.
func decodeUpdateTask(params map[string]any) (updateTaskParams, error) {
	id, ok := stringParam(params, "taskId", "id")
	if !ok || id == "" {
		return updateTaskParams{}, newToolError(CodeMissingTaskID, ToolUpdateTask, params,
			"no task id was provided", "Please edit the task manually in the Tasks section.")
	}
	if !validID(id) {
		return updateTaskParams{}, newToolError(CodeInvalidTaskIDFormat, ToolUpdateTask, params,
			"the task id is not a valid identifier", "Please edit the task manually in the Tasks section.")
	}

	updates, ok := objectParam(params, "updates")
	if !ok {
		return updateTaskParams{}, newToolError(CodeMissingTaskUpdates, ToolUpdateTask, params,
			"no updates were provided", "Please edit the task manually in the Tasks section.")
	}

	return updateTaskParams{ID: id, Updates: updates}, nil
}

func (d *Dispatcher) updateTask(params map[string]any) (Fragment, error) {
	p, err := decodeUpdateTask(params)
	if err != nil {
		return Fragment{}, err
	}

	return Fragment{
		ActionMetadata: map[string]any{
			"id":      p.ID,
			"updates": p.Updates,
		},
		ContextItemID:   p.ID,
		ContextItemType: EntityTask,
		UpdatedItemType: EntityTask,
		ActionIcon:      IconTask,
	}, nil
}
