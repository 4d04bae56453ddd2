package actions

import (
	"strings"
)

// createGoalParams is the typed parameter record for createGoal.
type createGoalParams struct {
	Title    string
	Target   *float64
	Progress *float64
}

// decodeCreateGoal validates and decodes createGoal parameters.
func decodeCreateGoal(params map[string]any) (createGoalParams, error) {
	title, _ := stringParam(params, "title")
	title = strings.TrimSpace(title)
	if title == "" {
		return createGoalParams{}, newToolError(CodeMissingGoalTitle, ToolCreateGoal, params,
			"a goal needs a title", "Please create it manually in the Goals section.")
	}

	p := createGoalParams{Title: title}

	if v, ok := params["target"]; ok {
		target, valid := numberParam(v)
		if !valid || target <= 0 {
			return createGoalParams{}, newToolError(CodeInvalidGoalTarget, ToolCreateGoal, params,
				"the goal target must be a number greater than zero", "Please create it manually in the Goals section.")
		}
		p.Target = &target
	}

	if v, ok := params["progress"]; ok {
		progress, valid := numberParam(v)
		if !valid || progress < 0 {
			return createGoalParams{}, newToolError(CodeInvalidGoalProgress, ToolCreateGoal, params,
				"the goal progress must be a number of at least zero", "Please create it manually in the Goals section.")
		}
		p.Progress = &progress
	}

	return p, nil
}

func (d *Dispatcher) createGoal(params map[string]any) (Fragment, error) {
	p, err := decodeCreateGoal(params)
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
	if p.Target != nil {
		metadata["target"] = *p.Target
	}
	if p.Progress != nil {
		metadata["progress"] = *p.Progress
	}

	return Fragment{
		ActionMetadata:  metadata,
		ContextItemID:   id,
		ContextItemType: EntityGoal,
		ActionIcon:      IconGoal,
	}, nil
}

// updateGoalParams is the typed parameter record for updateGoal.
type updateGoalParams struct {
	ID      string
	Updates map[string]any
}

// decodeUpdateGoal validates and decodes updateGoal parameters.
func decodeUpdateGoal(params map[string]any) (updateGoalParams, error) {
	id, ok := stringParam(params, "goalId", "id")
	if !ok || id == "" {
		return updateGoalParams{}, newToolError(CodeMissingGoalID, ToolUpdateGoal, params,
			"no goal id was provided", "Please edit the goal manually in the Goals section.")
	}
	if !validID(id) {
		return updateGoalParams{}, newToolError(CodeInvalidGoalIDFormat, ToolUpdateGoal, params,
			"the goal id is not a valid identifier", "Please edit the goal manually in the Goals section.")
	}

	updates, ok := objectParam(params, "updates")
	if !ok {
		return updateGoalParams{}, newToolError(CodeMissingGoalUpdates, ToolUpdateGoal, params,
			"no updates were provided", "Please edit the goal manually in the Goals section.")
	}

	if v, ok := updates["target"]; ok {
		target, valid := numberParam(v)
		if !valid || target <= 0 {
			return updateGoalParams{}, newToolError(CodeInvalidGoalTarget, ToolUpdateGoal, params,
				"the goal target must be a number greater than zero", "Please edit the goal manually in the Goals section.")
		}
	}

	if v, ok := updates["progress"]; ok {
		progress, valid := numberParam(v)
		if !valid || progress < 0 {
			return updateGoalParams{}, newToolError(CodeInvalidGoalProgress, ToolUpdateGoal, params,
				"the goal progress must be a number of at least zero", "Please edit the goal manually in the Goals section.")
		}
	}

	return updateGoalParams{ID: id, Updates: updates}, nil
}

func (d *Dispatcher) updateGoal(params map[string]any) (Fragment, error) {
	p, err := decodeUpdateGoal(params)
	if err != nil {
		return Fragment{}, err
	}

	return Fragment{
		ActionMetadata: map[string]any{
			"id":      p.ID,
			"updates": p.Updates,
		},
		ContextItemID:   p.ID,
		ContextItemType: EntityGoal,
		UpdatedItemType: EntityGoal,
		ActionIcon:      IconGoal,
	}, nil
}
