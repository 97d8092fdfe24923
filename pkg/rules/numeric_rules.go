package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Range validates that a numeric value falls within [min, max] inclusive.
// String values are parsed as floats first; non-numeric values fail.
func Range(min, max float64) Rule {
	return New(KindRange, fmt.Sprintf("must be between %v and %v", min, max), func(value any, _ Context) bool {
		f, ok := numericOf(value)
		if !ok {
			return false
		}
		return f >= min && f <= max
	})
}

// Min validates that a numeric value is at least min.
func Min(min float64) Rule {
	return New(KindRange, fmt.Sprintf("must be at least %v", min), func(value any, _ Context) bool {
		f, ok := numericOf(value)
		if !ok {
			return false
		}
		return f >= min
	})
}

// Max validates that a numeric value is at most max.
func Max(max float64) Rule {
	return New(KindRange, fmt.Sprintf("must be at most %v", max), func(value any, _ Context) bool {
		f, ok := numericOf(value)
		if !ok {
			return false
		}
		return f <= max
	})
}

func numericOf(value any) (float64, bool) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return floatOf(value)
}
