package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const resetKeyPrefix = "auth:reset:"

// AuthService coordinates registration, login and account maintenance.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	denylist   *auth.TokenDenylist
	redis      *redis.Client
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Denylist *auth.TokenDenylist
	Redis    *redis.Client
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		denylist:   deps.Denylist,
		redis:      deps.Redis,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   cfg.Auth.PasswordResetTTL(),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account and issues its first token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email, password required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a user by email and password. The error is the
// same for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.denylist.Revoke(ctx, tokenID, expiresAt)
}

// GetProfile loads the caller's account.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdateInput carries a partial profile update; nil fields are
// left untouched.
type ProfileUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateProfile applies a partial update to the caller's account,
// re-hashing the password when it changes.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	patch := repository.UserPatch{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, apperrors.NewValidationError("password must not be empty", nil)
		}
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperrors.NewNotFound("user", nil)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset issues a reset token for the account, stored in
// Redis with a TTL. The token is returned for delivery by the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperrors.NewNotFound("user", nil)
		}
		return "", err
	}
	if s.redis == nil {
		return "", apperrors.NewInternalError(errors.New("reset token store unavailable"))
	}

	token := uuid.NewString()
	if err := s.redis.Set(ctx, resetKeyPrefix+token, user.ID, s.resetTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password.
// Tokens are single use.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("password must not be empty", nil)
	}
	if s.redis == nil {
		return apperrors.NewInternalError(errors.New("reset token store unavailable"))
	}

	userID, err := s.redis.GetDel(ctx, resetKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.NewValidationError("reset token expired or unknown", nil)
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, userID, repository.UserPatch{PasswordHash: &hash}); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}
