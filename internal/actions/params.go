package actions

import (
	"encoding/json"
	"time"

	"nudge/internal/ident"
)

// validID reports whether a caller-supplied entity id is canonically formed.
func validID(id string) bool {
	return ident.Valid(id)
}

// stringParam returns the first of the named keys that holds a string value.
func stringParam(params map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := params[key]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// numberParam coerces a decoded JSON value to a float64.
func numberParam(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// objectParam returns the named key as a generic object.
func objectParam(params map[string]any, key string) (map[string]any, bool) {
	v, ok := params[key]
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// whenFormats are the accepted schedule timestamp layouts, tried in order.
var whenFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen parses a schedule timestamp in any accepted layout.
func parseWhen(s string) (time.Time, bool) {
	for _, layout := range whenFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
