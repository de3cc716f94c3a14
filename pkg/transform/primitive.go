package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vango-dev/elements/internal/errors"
)

var stringTransform = Transform{
	Stringify: func(value any) (string, bool, error) {
		switch v := value.(type) {
		case string:
			return v, true, nil
		case fmt.Stringer:
			return v.String(), true, nil
		}
		return "", false, typeError(KindString, value)
	},
	Parse: func(raw string, _ any) (any, error) {
		return raw, nil
	},
	Normalize: func(value any, _ any) (any, error) {
		switch v := value.(type) {
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		}
		return nil, typeError(KindString, value)
	},
}

var numberTransform = Transform{
	Stringify: func(value any) (string, bool, error) {
		f, ok := toFloat(value)
		if !ok {
			return "", false, typeError(KindNumber, value)
		}
		return FormatNumber(f), true, nil
	},
	Parse: func(raw string, _ any) (any, error) {
		return ParseNumber(raw), nil
	},
	Normalize: func(value any, _ any) (any, error) {
		f, ok := toFloat(value)
		if !ok {
			return nil, typeError(KindNumber, value)
		}
		return f, nil
	},
}

var booleanTransform = Transform{
	Stringify: func(value any) (string, bool, error) {
		b, ok := value.(bool)
		if !ok {
			return "", false, typeError(KindBoolean, value)
		}
		return strconv.FormatBool(b), true, nil
	},
	Parse: func(raw string, _ any) (any, error) {
		return raw == "true", nil
	},
	Normalize: func(value any, _ any) (any, error) {
		b, ok := value.(bool)
		if !ok {
			return nil, typeError(KindBoolean, value)
		}
		return b, nil
	},
}

// ParseNumber converts an attribute string to a number. Surrounding
// whitespace is ignored, the empty string is 0 and anything that is not a
// number is NaN.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	// strconv accepts spellings ("inf", "nan", hex floats, digit
	// separators) that attribute values do not.
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != 'e' && r != 'E' && r != '+' && r != '-' {
			return math.NaN()
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// FormatNumber returns the attribute form of f: decimal notation for
// magnitudes in [1e-6, 1e21), exponent notation otherwise.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + exp[:1] + digits
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func typeError(kind Kind, value any) error {
	return errors.New("E211").
		WithDetailf("%s prop cannot hold a %T", kind, value).
		Wrap(ErrType)
}

func shapeError(kind Kind, raw string, cause error) error {
	wrapped := ErrShape
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrShape, cause)
	}
	return errors.New("E210").
		WithDetailf("cannot parse %q as %s", raw, kind).
		Wrap(wrapped)
}
