// internal/numparse/numparse.go
package numparse

import (
	"strconv"
	"strings"
	"time"
)

// Float parses a locale-formatted numeric string where the comma is the
// decimal separator and the dot a thousands separator ("1.234,56", "12,5").
// Plain dot-decimal input ("12.5") is accepted too. Missing or malformed
// input yields 0: absent numeric data is treated as zero throughout the
// aggregation layer, never as an error.
func Float(raw string) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0
	}

	if strings.Contains(v, ",") {
		// Decimal-comma form: dots are grouping separators.
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	} else if dots := strings.Count(v, "."); dots > 1 {
		// Multiple dots with no comma: all grouping, no decimal part.
		v = strings.ReplaceAll(v, ".", "")
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// Date parses an MM/DD/YYYY date. The boolean reports whether the value was
// parseable; callers that only tolerate valid dates (the monthly stock view)
// skip rows where it is false.
func Date(raw string) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("01/02/2006", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
