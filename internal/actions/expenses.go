package actions

import (
	"fmt"
	"strings"
)

// expenseItem is the typed record for one expense in a batch.
type expenseItem struct {
	Item     string
	Amount   float64
	Category string
	Date     string
}

// decodeExpenses validates and decodes the trackExpenses batch. A bare
// expense object is coerced to a one-element batch. Any invalid item fails
// the whole batch; no partial results are produced.
func decodeExpenses(params map[string]any) ([]expenseItem, error) {
	raw, ok := params["expenses"]
	if !ok {
		return nil, newToolError(CodeMissingExpenses, ToolTrackExpenses, params,
			"no expenses were provided", "Please add them manually in the Expenses section.")
	}

	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	case map[string]any:
		entries = []any{v}
	default:
		return nil, newToolError(CodeMissingExpenses, ToolTrackExpenses, params,
			"expenses must be a list", "Please add them manually in the Expenses section.")
	}

	if len(entries) == 0 {
		return nil, newToolError(CodeMissingExpenses, ToolTrackExpenses, params,
			"the expense list is empty", "Please add them manually in the Expenses section.")
	}

	items := make([]expenseItem, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, newToolError(CodeInvalidExpenseItem, ToolTrackExpenses, params,
				fmt.Sprintf("expense %d is not an object", i+1), "Please add it manually in the Expenses section.")
		}

		name, _ := stringParam(obj, "item")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, newToolError(CodeInvalidExpenseItem, ToolTrackExpenses, params,
				fmt.Sprintf("expense %d is missing an item name", i+1), "Please add it manually in the Expenses section.")
		}

		amount, ok := numberParam(obj["amount"])
		if !ok || amount <= 0 {
			return nil, newToolError(CodeInvalidExpenseAmount, ToolTrackExpenses, params,
				fmt.Sprintf("expense %q needs an amount greater than zero", name), "Please add it manually in the Expenses section.")
		}

		category, _ := stringParam(obj, "category")
		date, _ := stringParam(obj, "date")

		items = append(items, expenseItem{Item: name, Amount: amount, Category: category, Date: date})
	}

	return items, nil
}

// trackExpenses records a batch of expenses. The whole batch is validated
// before any identifier is minted, so a failing item aborts without partial
// results. Batch results set multipleActions instead of a singular context
// item.
func (d *Dispatcher) trackExpenses(params map[string]any) (Fragment, error) {
	items, err := decodeExpenses(params)
	if err != nil {
		return Fragment{}, err
	}

	var total float64
	records := make([]map[string]any, 0, len(items))
	multiple := make([]MultiAction, 0, len(items))

	for _, item := range items {
		id, err := d.ids.Generate()
		if err != nil {
			return Fragment{}, err
		}

		record := map[string]any{
			"id":     id,
			"item":   item.Item,
			"amount": item.Amount,
		}
		if item.Category != "" {
			record["category"] = item.Category
		}
		if item.Date != "" {
			record["date"] = item.Date
		}

		total += item.Amount
		records = append(records, record)
		multiple = append(multiple, MultiAction{Type: EntityExpense, ID: id, Data: record})
	}

	return Fragment{
		ActionMetadata: map[string]any{
			"expenses":     records,
			"total_amount": total,
			"count":        len(records),
		},
		MultipleActions: multiple,
		ActionIcon:      IconExpense,
	}, nil
}
