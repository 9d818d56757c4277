// Package maputil copies the map[string]any / []any trees produced by
// document codecs so stored settings cannot be changed through a returned
// reference.
package maputil

// Clone returns a deep copy of m. Nested maps and []any values are copied
// recursively; other values are shared. A nil map clones to nil.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	dst := make(map[string]any, len(m))
	for k, v := range m {
		dst[k] = CloneValue(v)
	}
	return dst
}

// CloneValue returns a deep copy of v when it is a map[string]any,
// map[any]any (YAML mappings with non-string keys) or []any, and v itself
// otherwise.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Clone(val)
	case map[any]any:
		if val == nil {
			return val
		}
		dst := make(map[any]any, len(val))
		for k, elem := range val {
			dst[k] = CloneValue(elem)
		}
		return dst
	case []any:
		if val == nil {
			return val
		}
		dst := make([]any, len(val))
		for i, elem := range val {
			dst[i] = CloneValue(elem)
		}
		return dst
	default:
		return v
	}
}
