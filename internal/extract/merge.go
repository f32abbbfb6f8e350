package extract

// Merge folds per-chunk parsed maps into one list per category key, in
// chunk order. A list value is flattened one level with its elements
// kept verbatim; any other value is appended as a single element unless
// it is empty. A key that only ever carried empty values still appears
// in the result, with an empty list, so downstream output can tell
// "asked and found nothing" apart from "never asked".
func Merge(chunks []map[string]any) map[string][]any {
	merged := map[string][]any{}
	for _, parsed := range chunks {
		for key, value := range parsed {
			if _, seen := merged[key]; !seen {
				merged[key] = []any{}
			}
			merged[key] = appendValue(merged[key], value)
		}
	}
	return merged
}

// MergeCategory is Merge restricted to a single category key, used when
// chunk replies have already been filtered down to one category.
func MergeCategory(values []any) []any {
	out := []any{}
	for _, value := range values {
		out = appendValue(out, value)
	}
	return out
}

func appendValue(dst []any, value any) []any {
	// emptiness is judged on the value as a whole; a list's elements
	// pass through untouched
	if list, ok := value.([]any); ok {
		return append(dst, list...)
	}
	if hasContent(value) {
		dst = append(dst, value)
	}
	return dst
}

// hasContent reports whether a parsed scalar carries information worth
// keeping. Zero values the model emits for "nothing found" are noise.
func hasContent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
