package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Username validation errors
var (
	ErrUsernameTooShort     = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong      = errors.New("username must be at most 32 characters")
	ErrUsernameInvalidChars = errors.New("username must contain only lowercase letters, numbers, dots, underscores, and hyphens")
	ErrUsernameInvalidStart = errors.New("username must start with a lowercase letter")
)

// usernameRegex validates a properly formatted username:
// - Starts with lowercase letter
// - Contains only lowercase letters, digits, dots, underscores, and hyphens
var usernameRegex = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

// ValidateUsername validates a username according to the rules:
// - 3-32 characters
// - Lowercase alphanumeric plus '.', '_' and '-'
// - Must start with a lowercase letter
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 32 {
		return ErrUsernameTooLong
	}

	if !usernameRegex.MatchString(username) {
		firstChar := rune(username[0])
		if !unicode.IsLower(firstChar) || !unicode.IsLetter(firstChar) {
			return ErrUsernameInvalidStart
		}
		return ErrUsernameInvalidChars
	}

	return nil
}

// NormalizeUsername trims surrounding whitespace and lowercases the input,
// so that "  Admin " and "admin" address the same account.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
