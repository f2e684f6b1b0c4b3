package actions

import (
	"fmt"
	"reflect"
	"strconv"

	"bizhub/models"
)

// Visible reports whether a field is shown for the given form data.
// Fields without a condition are always visible. Unknown operators keep the
// field visible so its own checks still apply.
func Visible(field models.FieldConfig, data map[string]any) bool {
	cond := field.Conditional
	if cond == nil || cond.DependsOn == "" {
		return true
	}
	actual := data[cond.DependsOn]
	switch cond.Op {
	case models.CondEquals, "":
		return matches(actual, cond.Value)
	case models.CondNotEquals:
		return !matches(actual, cond.Value)
	case models.CondIn:
		for _, candidate := range toSlice(cond.Value) {
			if matches(actual, candidate) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// matches compares a form value with an expected scalar. A list value matches
// when one of its elements does.
func matches(actual, expected any) bool {
	if list, ok := asList(actual); ok {
		for _, v := range list {
			if scalarEqual(v, expected) {
				return true
			}
		}
		return false
	}
	return scalarEqual(actual, expected)
}

// scalarEqual compares strings verbatim and coerces to numbers only when one
// side is numeric.
func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	_, aStr := a.(string)
	_, bStr := b.(string)
	if !aStr || !bStr {
		if fa, ok := toFloat(a); ok {
			if fb, ok := toFloat(b); ok {
				return fa == fb
			}
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toSlice(v any) []any {
	if list, ok := asList(v); ok {
		return list
	}
	return []any{v}
}

// asList converts any slice value into []any.
func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
