package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

const minPasswordLength = 6

// validateUsername checks the trimmed username: it must be non-empty and
// contain no whitespace. It returns the trimmed value to be stored.
func validateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", domain.NewFieldError("username", "Username is required.")
	}
	if strings.IndexFunc(trimmed, unicode.IsSpace) >= 0 {
		return "", domain.NewFieldError("username", "Username cannot contain spaces.")
	}
	return trimmed, nil
}

// validatePassword enforces presence and the minimum length, measured in
// characters rather than bytes.
func validatePassword(password string) error {
	if password == "" {
		return domain.NewFieldError("password", "Password is required.")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.NewFieldError("password", "Password must be at least 6 characters long.")
	}
	return nil
}

// validateRole rejects anything outside the closed role set. Absence is a
// failure here: explicit role-setting operations never default.
func validateRole(role string) (domain.Role, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return "", &domain.FieldError{Field: "role", Err: domain.ErrInvalidRole}
	}
	return r, nil
}

// validateCreate runs the field checks in a fixed order and reports the
// first violation: username, then password, then role. The username is
// trimmed before any check, so surrounding whitespace alone never fails it.
func validateCreate(in createFields) (username string, role domain.Role, err error) {
	username, err = validateUsername(in.Username)
	if err != nil {
		return "", "", err
	}
	if err = validatePassword(in.Password); err != nil {
		return "", "", err
	}
	role, err = validateRole(in.Role)
	if err != nil {
		return "", "", err
	}
	return username, role, nil
}

type createFields struct {
	Username string
	Password string
	Role     string
}
