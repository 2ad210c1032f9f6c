package mexbind

import "fmt"

// Host inputs arrive as plain any values. These helpers coerce them into the
// shapes class code typically wants, mirroring the loose numeric conventions
// of numerical hosts (every scalar tends to arrive as a float64).

// String coerces v to a string.
func String(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

// Int coerces v to an int. Floating-point inputs are accepted only when they
// carry an exact integer value.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return Int(float64(n))
	case float64:
		i := int(n)
		if float64(i) != n {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

// Float coerces v to a float64.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// Floats coerces v to a float64 vector. A scalar becomes a one-element
// vector; nil becomes an empty one.
func Floats(v any) ([]float64, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case []float64:
		out := make([]float64, len(s))
		copy(out, s)
		return out, nil
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, err := Float(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	default:
		f, err := Float(v)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
}
