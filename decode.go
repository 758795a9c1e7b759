package repoconfig

import (
	"bytes"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a configuration document. Empty, whitespace-only,
// comment-only and null documents decode to an empty mapping; any other
// non-mapping document is an error wrapping ErrDecode.
func DecodeYAML(data []byte) (map[string]any, error) {
	// yaml.v3 rejects a tab it cannot attach to a token.
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}

	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, not a mapping", ErrDecode, doc)
	}
	return m, nil
}

// normalize rewrites nested maps to map[string]any and slices to []any so
// Merge can descend into them. Map keys are stringified with fmt.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []byte:
		return t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}
