package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToAmount coerces a raw payload value into a finite float. Plain numeric
// strings such as "12.50" are accepted, formatted ones ("$12.50") are not.
// Booleans, nil, NaN and infinities are rejected.
func ToAmount(raw interface{}) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RoundCents rounds to two decimals for display.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
