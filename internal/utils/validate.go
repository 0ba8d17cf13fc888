package utils

import (
	"regexp"
	"strings"
)

// emailPattern accepts the usual local@domain.tld shape.  Anything the
// pattern rejects never reaches the booking engine.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CleanName trims the client name and reports whether the result is
// acceptable (at least two characters after trimming).
func CleanName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, len(name) >= 2
}

// CleanEmail lowercases the address and validates it against
// emailPattern.  The lowercased form is the canonical identity used for
// duplicate detection, so it must be applied before any store lookup.
func CleanEmail(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	return email, emailPattern.MatchString(email)
}
