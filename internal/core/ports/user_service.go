package ports

import (
	"context"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new account.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// UpdateUserInput is a partial patch. Nil pointer means "leave unchanged";
// a non-nil pointer means "set to this value". Password, when present, is
// hashed by the service and never persisted in plaintext.
type UpdateUserInput struct {
	Username *string
	Password *string
	Email    *string
	Active   *bool
}

// UserService exposes the account-management core. Every operation resolves
// the caller through the authorizer before touching the store; the caller
// identity comes from the session layer, never from request payloads.
type UserService interface {
	Create(ctx context.Context, caller domain.Identity, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	List(ctx context.Context, caller domain.Identity) ([]*domain.User, error)
	Update(ctx context.Context, caller domain.Identity, id string, patch UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
	ChangeRole(ctx context.Context, caller domain.Identity, id string, newRole string) error
}
