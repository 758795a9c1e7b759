package repoconfig

// SliceMergeFunc combines two sequences found under the same key. lower
// comes from the less specific layer, higher from the more specific one.
// Both arguments are private copies the function may modify or return.
type SliceMergeFunc func(lower, higher []any) []any

// MergeOptions tunes Merge.
type MergeOptions struct {
	// MergeSlices replaces the default sequence policy, which places the
	// higher-precedence elements before the lower-precedence ones.
	MergeSlices SliceMergeFunc
}

// Merge deep-merges layers given in ascending precedence. Absent layers
// contribute nothing; the result is absent only when every layer is.
// Mappings merge key by key, sequences are combined per opts, and any
// other value (or a type mismatch) takes the higher-precedence side.
// Inputs are never modified and the result shares no memory with them.
func Merge(opts *MergeOptions, layers ...Config) Config {
	var mergeSlices SliceMergeFunc
	if opts != nil {
		mergeSlices = opts.MergeSlices
	}

	var out map[string]any
	for _, layer := range layers {
		if !layer.IsPresent() {
			continue
		}
		if out == nil {
			out = cloneMap(layer.values)
			continue
		}
		out = mergeMaps(out, layer.values, mergeSlices)
	}

	if out == nil {
		return Absent()
	}
	return Present(out)
}

func mergeMaps(lower, higher map[string]any, mergeSlices SliceMergeFunc) map[string]any {
	out := make(map[string]any, len(lower)+len(higher))
	for k, v := range lower {
		out[k] = cloneValue(v)
	}
	for k, hv := range higher {
		lv, ok := out[k]
		if !ok {
			out[k] = cloneValue(hv)
			continue
		}
		out[k] = mergeValues(lv, hv, mergeSlices)
	}
	return out
}

func mergeValues(lower, higher any, mergeSlices SliceMergeFunc) any {
	switch h := higher.(type) {
	case map[string]any:
		if l, ok := lower.(map[string]any); ok {
			return mergeMaps(l, h, mergeSlices)
		}
	case []any:
		if l, ok := lower.([]any); ok {
			if mergeSlices != nil {
				return mergeSlices(cloneSlice(l), cloneSlice(h))
			}
			return append(cloneSlice(h), cloneSlice(l)...)
		}
	}
	return cloneValue(higher)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		return cloneSlice(t)
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}
