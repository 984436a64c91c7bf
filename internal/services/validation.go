package services

import (
	"regexp"
	"time"
	"unicode"

	"github.com/gofrs/uuid"
)

// Field rules. The character classes and bounds are part of the API
// contract and must not drift.
var (
	// 3-16 alphanumeric characters, case-insensitive.
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]{3,16}$`)
	// Local part, one or more dot-delimited domain labels, TLD of at
	// least two letters.
	emailRegex = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@([a-z0-9-]+\.)+[a-z]{2,}$`)
	// Letters, digits, space, underscore, hyphen; 3-50 characters.
	teamNameRegex = regexp.MustCompile(`^[A-Za-z0-9 _-]{3,50}$`)
	// Same charset as team names; 1-20 characters.
	tagNameRegex = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,20}$`)
	// Letters, digits and spaces; 3-100 characters, case-insensitive.
	titleRegex = regexp.MustCompile(`(?i)^[a-z0-9 ]{3,100}$`)
)

func isValidUsername(name string) bool { return usernameRegex.MatchString(name) }

func isValidEmail(email string) bool { return emailRegex.MatchString(email) }

func isValidTeamName(name string) bool { return teamNameRegex.MatchString(name) }

func isValidTagName(name string) bool { return tagNameRegex.MatchString(name) }

func isValidTitle(title string) bool { return titleRegex.MatchString(title) }

// isValidPassword requires 8-16 characters with at least one digit, one
// uppercase letter, one lowercase letter and one non-alphanumeric symbol.
// Expressed as a scan because RE2 has no lookaheads.
func isValidPassword(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 || len(runes) > 16 {
		return false
	}
	var hasDigit, hasUpper, hasLower, hasSymbol bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		default:
			hasSymbol = true
		}
	}
	return hasDigit && hasUpper && hasLower && hasSymbol
}

func isValidCommentContent(content string) bool {
	return len(content) >= 1 && len(content) <= 300
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts any of the timestamp shapes clients send for
// deadlines and date-range filters.
func ParseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// newID returns a sortable opaque unique identifier (UUIDv7).
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
