package repoconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		layers []Config
		want   Config
	}{
		{
			name: "no layers",
			want: Absent(),
		},
		{
			name:   "all absent",
			layers: []Config{Absent(), Absent()},
			want:   Absent(),
		},
		{
			name:   "empty present layer",
			layers: []Config{Absent(), Present(nil)},
			want:   Present(map[string]any{}),
		},
		{
			name: "scalars overridden by higher layer",
			layers: []Config{
				Present(map[string]any{"a": 1, "b": 1}),
				Present(map[string]any{"b": 2, "c": 2}),
			},
			want: Present(map[string]any{"a": 1, "b": 2, "c": 2}),
		},
		{
			name: "absent layers skipped",
			layers: []Config{
				Present(map[string]any{"a": 1}),
				Absent(),
				Present(map[string]any{"b": 2}),
			},
			want: Present(map[string]any{"a": 1, "b": 2}),
		},
		{
			name: "nested maps merge",
			layers: []Config{
				Present(map[string]any{"m": map[string]any{"x": 1, "y": 1}}),
				Present(map[string]any{"m": map[string]any{"y": 2, "z": 2}}),
			},
			want: Present(map[string]any{"m": map[string]any{"x": 1, "y": 2, "z": 2}}),
		},
		{
			name: "sequences put higher layer first",
			layers: []Config{
				Present(map[string]any{"s": []any{"B"}}),
				Present(map[string]any{"s": []any{"A"}}),
			},
			want: Present(map[string]any{"s": []any{"A", "B"}}),
		},
		{
			name: "type mismatch takes higher",
			layers: []Config{
				Present(map[string]any{"v": map[string]any{"x": 1}}),
				Present(map[string]any{"v": []any{1}}),
			},
			want: Present(map[string]any{"v": []any{1}}),
		},
		{
			name: "null overrides",
			layers: []Config{
				Present(map[string]any{"v": "set"}),
				Present(map[string]any{"v": nil}),
			},
			want: Present(map[string]any{"v": nil}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(nil, tt.layers...))
		})
	}
}

func TestMerge_Associative(t *testing.T) {
	defaults := Present(map[string]any{
		"list": []any{"d"},
		"m":    map[string]any{"a": "d", "b": "d", "l": []any{1}},
		"only": "d",
	})
	base := Present(map[string]any{
		"list": []any{"b"},
		"m":    map[string]any{"b": "b", "c": "b", "l": []any{2}},
	})
	primary := Present(map[string]any{
		"list": []any{"p"},
		"m":    map[string]any{"c": "p", "l": []any{3}},
	})

	flat := Merge(nil, defaults, base, primary)
	leftFirst := Merge(nil, Merge(nil, defaults, base), primary)
	rightFirst := Merge(nil, defaults, Merge(nil, base, primary))

	assert.Equal(t, flat, leftFirst)
	assert.Equal(t, flat, rightFirst)
	assert.Equal(t, []any{"p", "b", "d"}, flat.Values()["list"])
	assert.Equal(t, []any{3, 2, 1}, flat.Values()["m"].(map[string]any)["l"])
}

func TestMerge_CustomSlices(t *testing.T) {
	opts := &MergeOptions{
		MergeSlices: func(lower, higher []any) []any {
			return append(lower, higher...)
		},
	}

	got := Merge(opts,
		Present(map[string]any{"s": []any{"B"}}),
		Present(map[string]any{"s": []any{"A"}}),
	)
	assert.Equal(t, []any{"B", "A"}, got.Values()["s"])
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	lower := map[string]any{"m": map[string]any{"x": 1}, "s": []any{"a"}}
	higher := map[string]any{"m": map[string]any{"y": 2}}

	got := Merge(nil, Present(lower), Present(higher))
	got.Values()["m"].(map[string]any)["x"] = 100
	got.Values()["s"].([]any)[0] = "changed"

	assert.Equal(t, map[string]any{"x": 1}, lower["m"])
	assert.Equal(t, []any{"a"}, lower["s"])
	assert.Equal(t, map[string]any{"y": 2}, higher["m"])
}
