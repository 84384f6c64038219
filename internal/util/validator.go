package util

import (
	"fmt"
	"regexp"
)

// usernames become directory names under the upload root, so the
// character set stays narrow
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername checks that a username is 3-20 characters of letters,
// digits or underscore.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is empty")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, digits or underscore")
	}
	return nil
}
