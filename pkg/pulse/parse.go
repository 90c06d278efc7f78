package pulse

import (
	"fmt"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// Index keys of the nested reading shape.
const (
	keyLeftCun    = "1"
	keyLeftGuan   = "2"
	keyLeftChi    = "3"
	keyRightCun   = "4"
	keyRightGuan  = "5"
	keyRightChi   = "6"
	keyOverall    = "7"
	keyFeatures   = "8"
	keySuggestion = "9"
)

// Parse builds a grid from a decoded reading. Two shapes are accepted:
//
//	{"positions": {"1": {"levels": {"fu": .., "zhong": .., "chen": ..}, "value": ..}, ..}}
//	{"left-cun-fu": .., "right-chi-chen": .., "overall_description": ..}
//
// The "positions" wrapper is optional. Non-string map keys, as YAML
// produces for unquoted position numbers, are read by their printed form.
// Anything missing or of the wrong type yields empty text; Parse never fails.
func Parse(raw map[string]any) types.PulseGrid {
	if raw == nil {
		return types.PulseGrid{}
	}
	raw = stringKeys(raw)
	if nested, ok := raw["positions"].(map[string]any); ok {
		return parseNested(nested)
	}
	if _, ok := raw[keyLeftCun]; ok {
		return parseNested(raw)
	}
	return parseFlat(raw)
}

func parseNested(m map[string]any) types.PulseGrid {
	return types.PulseGrid{
		LeftCun:    nestedPosition(m[keyLeftCun]),
		LeftGuan:   nestedPosition(m[keyLeftGuan]),
		LeftChi:    nestedPosition(m[keyLeftChi]),
		RightCun:   nestedPosition(m[keyRightCun]),
		RightGuan:  nestedPosition(m[keyRightGuan]),
		RightChi:   nestedPosition(m[keyRightChi]),
		Overall:    nestedValue(m[keyOverall]),
		Features:   nestedValue(m[keyFeatures]),
		Suggestion: nestedValue(m[keySuggestion]),
	}
}

func nestedPosition(v any) types.Position {
	m, ok := v.(map[string]any)
	if !ok {
		return types.Position{}
	}
	levels, _ := m["levels"].(map[string]any)
	return types.Position{
		Fu:    text(levels["fu"]),
		Zhong: text(levels["zhong"]),
		Chen:  text(levels["chen"]),
		Value: text(m["value"]),
	}
}

func nestedValue(v any) string {
	switch x := v.(type) {
	case map[string]any:
		return text(x["value"])
	default:
		return text(x)
	}
}

func parseFlat(m map[string]any) types.PulseGrid {
	pos := func(side, section string) types.Position {
		level := func(depth string) string {
			if s := text(m[side+"-"+section+"-"+depth]); s != "" {
				return s
			}
			// Unsided keys predate two-handed recording and fill both hands.
			return text(m[section+"-"+depth])
		}
		return types.Position{
			Fu:    level("fu"),
			Zhong: level("zhong"),
			Chen:  level("chen"),
			Value: text(m[side+"-"+section]),
		}
	}
	return types.PulseGrid{
		LeftCun:    pos("left", "cun"),
		LeftGuan:   pos("left", "guan"),
		LeftChi:    pos("left", "chi"),
		RightCun:   pos("right", "cun"),
		RightGuan:  pos("right", "guan"),
		RightChi:   pos("right", "chi"),
		Overall:    text(m["overall_description"]),
		Features:   text(m["features"]),
		Suggestion: text(m["suggestion"]),
	}
}

// stringKeys returns m with every nested map keyed by string.
func stringKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return stringKeys(x)
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			out[fmt.Sprint(k)] = normalize(v)
		}
		return out
	default:
		return v
	}
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case bool, int, int64, float64:
		return fmt.Sprint(x)
	default:
		return ""
	}
}
