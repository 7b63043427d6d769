package service

import "github.com/statuspulse/monitoring-system/internal/core/domain"

// requireAuthenticated gates every core operation. It runs before any role
// check so an anonymous caller sees a generic auth failure instead of
// learning which role the operation wants.
func requireAuthenticated(caller domain.Identity) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// requireAdmin gates the mutating and listing operations.
func requireAdmin(caller domain.Identity) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
