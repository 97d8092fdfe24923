package rules

import (
	"net/mail"
	"regexp"
	"strings"
)

// Phone number regex - international format with optional country code
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Email validates that a value is a well-formed email address. Parsing uses
// RFC 5322 via net/mail, tightened for typical web use: the domain must
// contain at least one dot and no empty labels.
func Email() Rule {
	return New(KindFormat, "must be a valid email address", func(value any, _ Context) bool {
		s := stringOf(value)
		if strings.TrimSpace(s) == "" {
			return true
		}

		addr, err := mail.ParseAddress(s)
		if err != nil {
			return false
		}

		parts := strings.Split(addr.Address, "@")
		if len(parts) != 2 || parts[0] == "" {
			return false
		}

		domain := parts[1]
		if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
			return false
		}
		for part := range strings.SplitSeq(domain, ".") {
			if part == "" {
				return false
			}
		}

		return true
	})
}

// Phone validates that a value is an E.164-style phone number with an
// optional leading plus sign. Spaces and dashes are stripped before matching.
func Phone() Rule {
	return New(KindFormat, "must be a valid phone number", func(value any, _ Context) bool {
		s := stringOf(value)
		if strings.TrimSpace(s) == "" {
			return true
		}

		normalized := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(s)
		return phoneRegex.MatchString(normalized)
	})
}
