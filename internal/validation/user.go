// Package validation provides input validation for the auth endpoints.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLen = 5
	maxPasswordLen = 128
	minNameLen     = 2
	maxNameLen     = 70
)

// ValidateEmail checks that the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("please enter a valid email")
	}
	return nil
}

// ValidatePassword checks the password length after trimming.
func ValidatePassword(password string) error {
	trimmed := strings.TrimSpace(password)
	if len(trimmed) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(trimmed) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateName checks the display name length after trimming.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minNameLen {
		return fmt.Errorf("name must be at least %d characters long", minNameLen)
	}
	if len(trimmed) > maxNameLen {
		return fmt.Errorf("name must not exceed %d characters", maxNameLen)
	}
	return nil
}
