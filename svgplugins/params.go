package svgplugins

import (
	"math"

	"github.com/benoitkugler/svgo/internal/svglog"
)

// Params are the parameters of a plugin, as decoded from a configuration
// file. Numbers may be stored with any numeric type.
type Params map[string]any

// asParams accepts the types produced by the YAML decoder.
func asParams(v any) (Params, bool) {
	switch v := v.(type) {
	case Params:
		return v, true
	case map[string]any:
		return Params(v), true
	}
	return nil, false
}

// mergeParams returns a new map, later layers taking precedence.
func mergeParams(layers ...Params) Params {
	out := Params{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

func invalidParam(name string, value any) {
	svglog.Logger().Warn("ignoring invalid plugin parameter", "name", name, "value", value)
}

// Bool returns the boolean parameter name, or def.
func (p Params) Bool(name string, def bool) bool {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		invalidParam(name, v)
		return def
	}
	return b
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Float returns the numeric parameter name, or def.
func (p Params) Float(name string, def float64) float64 {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		invalidParam(name, v)
		return def
	}
	return f
}

// Int returns the integer parameter name, or def.
// Non integral numbers are truncated.
func (p Params) Int(name string, def int) int {
	f := p.Float(name, math.NaN())
	if math.IsNaN(f) {
		return def
	}
	return int(f)
}

// OptionalInt is like Int, but reports whether the parameter is set.
func (p Params) OptionalInt(name string) (int, bool) {
	f := p.Float(name, math.NaN())
	if math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}

// String returns the string parameter name, or def.
func (p Params) String(name string, def string) string {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		invalidParam(name, v)
		return def
	}
	return s
}

// Strings returns the list of strings name, or nil.
// A single string is accepted as a list of one element.
func (p Params) Strings(name string) []string {
	switch v := p[name].(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				invalidParam(name, item)
			}
		}
		return out
	default:
		invalidParam(name, v)
		return nil
	}
}
