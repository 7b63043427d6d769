package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
	"github.com/statuspulse/monitoring-system/internal/core/ports"
)

// AuthService authenticates credentials against the store and issues HS256
// session tokens carrying the user id and role.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	limiter   ports.LoginLimiter
	log       zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, limiter ports.LoginLimiter, log zerolog.Logger, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		limiter:   limiter,
		log:       log,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login verifies the credentials and returns a signed token plus the
// account. Repeated failures for the same username are throttled through
// the limiter; limiter outages fail open so a Redis incident cannot lock
// everyone out.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	locked, err := s.limiter.TooManyAttempts(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, continuing")
	} else if locked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Active || !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter reset failed")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("login succeeded")
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter record failed")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
