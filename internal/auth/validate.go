package auth

import (
	"regexp"

	"github.com/fmansouri/pocketledger/internal/common"
)

const (
	minPasswordLen = 6
	maxNameLen     = 100
)

// emailPattern accepts the basic local@domain.tld shape; real
// verification is the server's job.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validationError(msg string) error {
	return common.NewUserError(msg, common.ErrValidation)
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return validationError("Invalid email address")
	}
	return nil
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return validationError("Please fill in all fields")
	}
	return validateEmail(email)
}

func validateName(name string) error {
	if len(name) > maxNameLen {
		return validationError("Name is too long")
	}
	return nil
}

func validatePasswordLength(password string) error {
	if len(password) < minPasswordLen {
		return validationError("Password must be at least 6 characters")
	}
	return nil
}
