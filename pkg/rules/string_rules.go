package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Required validates that a value is present: non-nil, and not an empty or
// whitespace-only string. Empty slices and maps also fail.
func Required() Rule {
	return New(KindRequired, "field is required", func(value any, _ Context) bool {
		if value == nil {
			return false
		}
		switch v := value.(type) {
		case string:
			return strings.TrimSpace(v) != ""
		case bool:
			return true
		}
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array:
			return rv.Len() > 0
		case reflect.Ptr, reflect.Interface:
			return !rv.IsNil()
		}
		return true
	})
}

// MinLength validates that the string form of a value is at least min
// characters long. Empty values pass so Required stays the only rule that
// rejects absence.
func MinLength(min int) Rule {
	return New(KindLength, fmt.Sprintf("must be at least %d characters long", min), func(value any, _ Context) bool {
		s := stringOf(value)
		if s == "" {
			return true
		}
		return len([]rune(s)) >= min
	})
}

// MaxLength validates that the string form of a value is at most max
// characters long.
func MaxLength(max int) Rule {
	return New(KindLength, fmt.Sprintf("must be at most %d characters long", max), func(value any, _ Context) bool {
		return len([]rune(stringOf(value))) <= max
	})
}

// Pattern validates the string form of a value against a regular expression.
// Empty values pass; combine with Required to reject absence.
func Pattern(re *regexp.Regexp, message string) Rule {
	if message == "" {
		message = "has an invalid format"
	}
	return New(KindPattern, message, func(value any, _ Context) bool {
		s := stringOf(value)
		if s == "" {
			return true
		}
		return re.MatchString(s)
	})
}
