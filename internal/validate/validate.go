package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'&.,/\\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
)

const (
	MaxQty     = 100000
	MaxColors  = 12
	maxNameLen = 100
	maxTextLen = 1000
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Qty accepts order quantities from 1 up to MaxQty.
func Qty(n int) bool {
	return n >= 1 && n <= MaxQty
}

// Colors accepts a branding colour count. Zero is allowed and priced as one.
func Colors(n int) bool {
	return n >= 0 && n <= MaxColors
}

// ID validates a simple resource identifier (product/category/quote ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// OptionalID is ID for fields that may be left empty.
func OptionalID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return ID(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxNameLen {
		return "", false
	}
	return s, true
}

// Phone is optional; when present it must look like a phone number.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

// Text bounds free-form fields such as notes and custom branding text.
func Text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= maxTextLen
}

// Password enforces the bcrypt length window for login checks.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 72
}
