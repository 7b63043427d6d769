package domain

import "time"

// Role is the closed set of access levels an account can hold.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// DefaultRole is applied by the repair pass to accounts whose stored role
// is empty or unrecognised. It is never a creation-time default: create and
// change-role reject invalid roles instead.
const DefaultRole = RoleViewer

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// ParseRole converts a wire-level string into a Role, failing with
// ErrInvalidRole for anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User models a stored account on the monitoring server.
// PasswordHash is the opaque digest produced by the hashing service and is
// excluded from every JSON projection.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the resolved caller of an operation, supplied by the session
// layer. A zero Identity is an anonymous caller.
type Identity struct {
	UserID string
	Role   Role
}

// Authenticated reports whether a valid session backs this identity.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}
