package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
	"github.com/statuspulse/monitoring-system/internal/core/ports"
)

// UserService implements the account-management core: every operation
// composes the authorizer, the field validators, the persistence
// collaborator, and the hashing collaborator.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

// Create adds a new account. Admin only. The username pre-check gives a
// fast field-tagged duplicate error; the store's unique index remains the
// authoritative guard under concurrent creation.
func (s *UserService) Create(ctx context.Context, caller domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	username, role, err := validateCreate(createFields{
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, &domain.FieldError{Field: "username", Err: domain.ErrDuplicateUsername}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: digest,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, &domain.FieldError{Field: "username", Err: domain.ErrDuplicateUsername}
		}
		return nil, err
	}

	s.log.Info().
		Str("acting_user_id", caller.UserID).
		Str("user_id", created.ID).
		Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("user created")

	return created, nil
}

// Get returns a single account. Requires authentication only; no role
// restriction is applied on reads.
func (s *UserService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// List returns all accounts ordered by username. Admin only; the store is
// never queried for a non-admin caller.
func (s *UserService) List(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// Update applies a partial patch to an account. Admin only. Nil patch
// fields are left untouched; a present password is hashed and the
// plaintext discarded before persistence.
func (s *UserService) Update(ctx context.Context, caller domain.Identity, id string, patch ports.UpdateUserInput) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		username, err := validateUsername(*patch.Username)
		if err != nil {
			return nil, err
		}
		user.Username = username
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		digest, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = digest
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, &domain.FieldError{Field: "username", Err: domain.ErrDuplicateUsername}
		}
		return nil, err
	}

	s.log.Info().
		Str("acting_user_id", caller.UserID).
		Str("user_id", user.ID).
		Msg("user updated")

	return user, nil
}

// Delete permanently removes an account. Admin only. A caller can never
// delete its own account; the check runs before any store access.
func (s *UserService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if id == caller.UserID {
		return domain.ErrSelfDelete
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().
		Str("acting_user_id", caller.UserID).
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("user deleted")

	return nil
}

// ChangeRole sets an account's role to a member of the closed role set.
// Admin only. Nothing prevents demoting the last remaining admin; that gap
// is a recorded product decision, not an oversight.
func (s *UserService) ChangeRole(ctx context.Context, caller domain.Identity, id string, newRole string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	role, err := domain.ParseRole(newRole)
	if err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().
		Str("acting_user_id", caller.UserID).
		Str("user_id", user.ID).
		Str("role", string(role)).
		Msg("user role changed")

	return nil
}
