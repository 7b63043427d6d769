package ports

import (
	"context"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
//
// The store enforces username uniqueness itself (unique index); Insert maps
// a constraint violation to domain.ErrDuplicateUsername, which is the
// authoritative duplicate signal under concurrent creation. The service's
// pre-check only exists to give a fast field-tagged error.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// FindAll returns every account ordered by username ascending.
	FindAll(ctx context.Context) ([]*domain.User, error)
}
