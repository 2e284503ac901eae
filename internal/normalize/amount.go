package normalize

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmountExponent bounds the decimal exponent of a feed amount. Anything
// outside it is treated as malformed.
const maxAmountExponent = 18

// ParseAmount coerces a feed amount into a non-negative decimal.
// Missing, non-numeric, non-finite or out-of-range amounts become zero.
func ParseAmount(v any) decimal.Decimal {
	var d decimal.Decimal
	switch t := v.(type) {
	case decimal.Decimal:
		d = t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(t)
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat32(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	case json.Number:
		d = parseAmountString(t.String())
	case string:
		d = parseAmountString(t)
	default:
		return decimal.Zero
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}
	return d.Abs()
}

// parseAmountString accepts plain, thousands-grouped and comma-decimal forms.
func parseAmountString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case dot < 0 && strings.Count(s, ",") > 1:
		// 1,234,567
		s = strings.ReplaceAll(s, ",", "")
	case comma > dot:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot > comma && comma >= 0:
		// 1,234.56
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
