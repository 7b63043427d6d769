package ports

import (
	"context"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

// PasswordHasher is the one-way credential hashing service. Hash returns an
// opaque digest; Verify reports whether plaintext matches a stored digest.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService authenticates credentials and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
