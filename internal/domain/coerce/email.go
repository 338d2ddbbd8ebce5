package coerce

import (
	"regexp"
	"strings"
)

// emailPattern is deliberately permissive: one @, a dot-separated domain,
// an alphabetic TLD of at least two characters, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)

// Email coerces value into a normalized (lowercased, trimmed) email address.
func Email(value any, field string) (*string, error) {
	s, err := String(value, field, StringOptions{})
	if err != nil {
		return nil, err
	}
	addr := strings.ToLower(*s)
	if !emailPattern.MatchString(addr) {
		return nil, errorf(field, "%s must be a valid email address", field)
	}
	return &addr, nil
}
