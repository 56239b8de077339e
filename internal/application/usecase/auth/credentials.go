// Package auth contains authentication-related use cases.
package auth

import (
	"regexp"
	"strings"

	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// MinUsernameLength is the minimum length of a normalized username.
const MinUsernameLength = 3

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// NormalizeUsername trims and lower-cases a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// validateUsername checks a normalized username.
func validateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"username must be at least 3 characters",
			domainerror.ErrInvalidUsername,
		)
	}
	if !usernameRegex.MatchString(username) {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"username may only contain lowercase letters, digits and underscores",
			domainerror.ErrInvalidUsername,
		)
	}
	return nil
}

func usernameTaken() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeUsernameExists,
		"username already taken",
		domainerror.ErrUsernameAlreadyExists,
	)
}
