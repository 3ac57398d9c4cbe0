package checkdp

import (
	"fmt"
	"sort"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Descriptor is a Data Package descriptor as an in-memory structural value:
// nested maps, slices and scalars. The engine only ever reads it.
type Descriptor = map[string]any

// ParseDescriptor decodes a JSON descriptor from raw bytes. It rejects
// documents whose top level is not an object.
func ParseDescriptor(data []byte) (Descriptor, error) {
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("descriptor is not valid JSON: %w", err)
	}
	d, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("descriptor must be a JSON object, got %T", v)
	}
	return d, nil
}

// ParseDescriptorYAML decodes a YAML descriptor from raw bytes.
func ParseDescriptorYAML(data []byte) (Descriptor, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("descriptor is not valid YAML: %w", err)
	}
	d, ok := yamlNormalize(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("descriptor must be a YAML mapping, got %T", v)
	}
	return d, nil
}

// yamlNormalize rewrites yaml-decoded map[any]any values into map[string]any
// recursively so descriptors behave identically regardless of input format.
func yamlNormalize(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = yamlNormalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[fmt.Sprint(k)] = yamlNormalize(e)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = yamlNormalize(e)
		}
		return out
	default:
		return v
	}
}

// ValueAt resolves a concrete path inside the descriptor, typically the
// location carried by an Issue.
func ValueAt(d Descriptor, p Path) (any, bool) {
	var cur any = map[string]any(d)
	for _, s := range p.segs {
		switch {
		case s.isIndex:
			arr, ok := cur.([]any)
			if !ok || s.index < 0 || s.index >= len(arr) {
				return nil, false
			}
			cur = arr[s.index]
		default:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			v, ok := obj[s.name]
			if !ok {
				return nil, false
			}
			cur = v
		}
	}
	return cur, true
}

// field pairs a concrete descriptor location with its value.
type field struct {
	path  Path
	value any
}

// resolve walks the descriptor and collects every location whose path matches
// the pattern, in deterministic (sorted-key) document order.
func resolve(d Descriptor, pat Pattern) []field {
	var out []field
	walk(map[string]any(d), Root(), func(p Path, v any) {
		if pat.Matches(p) {
			out = append(out, field{path: p, value: v})
		}
	})
	return out
}

// walk visits every location in the value tree, root included.
func walk(v any, at Path, visit func(Path, any)) {
	visit(at, v)
	switch vv := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(vv[k], at.Field(k), visit)
		}
	case []any:
		for i, e := range vv {
			walk(e, at.Index(i), visit)
		}
	}
}
