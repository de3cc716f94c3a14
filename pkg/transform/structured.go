package transform

import (
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

var arrayTransform = Transform{
	Stringify: func(value any) (string, bool, error) {
		if value == nil || isNilSlice(value) {
			return "[]", true, nil
		}
		return marshal(value)
	},
	Parse: func(raw string, _ any) (any, error) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return []any{}, nil
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			parts := strings.Split(trimmed, ",")
			out := make([]any, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		}

		arr, ok := data.([]any)
		if !ok {
			return nil, shapeError(KindArray, raw, nil)
		}
		return arr, nil
	},
	Normalize: func(value any, _ any) (any, error) {
		if value == nil {
			return []any{}, nil
		}
		switch reflect.TypeOf(value).Kind() {
		case reflect.Slice, reflect.Array:
			return value, nil
		}
		return nil, typeError(KindArray, value)
	},
}

var objectTransform = Transform{
	Stringify: marshal,
	Parse: func(raw string, _ any) (any, error) {
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, shapeError(KindObject, raw, err)
		}
		switch data.(type) {
		case map[string]any, nil:
			return data, nil
		}
		return nil, shapeError(KindObject, raw, nil)
	},
}

var jsonTransform = Transform{
	Stringify: marshal,
	Parse: func(raw string, _ any) (any, error) {
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, shapeError(KindJSON, raw, err)
		}
		return data, nil
	},
}

// marshal serializes value as JSON. Values with no JSON form, such as
// funcs and channels, are reported as not reflectable rather than failing.
func marshal(value any) (string, bool, error) {
	if value != nil {
		switch reflect.TypeOf(value).Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
			return "", false, nil
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", false, nil
	}
	return string(data), true, nil
}

func isNilSlice(value any) bool {
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Slice && v.IsNil()
}
