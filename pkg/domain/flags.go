package domain

import "fmt"

// Flags are narrative switches keyed by name. Values are bool, float64 or string.
type Flags map[string]any

// NormalizeFlagValue coerces a flag value into one of the three allowed kinds.
// Integer kinds become float64 so that values survive a JSON round-trip unchanged.
func NormalizeFlagValue(v any) (any, error) {
	switch x := v.(type) {
	case bool, string, float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return nil, fmt.Errorf("flag value must be bool, number or string, got %T", v)
	}
}
