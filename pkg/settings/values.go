package settings

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ToValues flattens a saved form document into form values. Strings are kept
// as is, numbers and booleans are formatted, arrays become repeated values.
// Nested objects and nulls are skipped.
func ToValues(doc Document) url.Values {
	values := make(url.Values, len(doc))
	for key, raw := range doc {
		switch v := raw.(type) {
		case []any:
			for _, item := range v {
				if s, ok := scalar(item); ok {
					values.Add(key, s)
				}
			}
		default:
			if s, ok := scalar(v); ok {
				values.Set(key, s)
			}
		}
	}
	return values
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case nil, map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}
