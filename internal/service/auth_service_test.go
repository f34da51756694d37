package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	userRepo, err := repository.NewFileUserRepository(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = 4 // minimum cost keeps the suite fast

	return NewAuthService(cfg, AuthDependencies{
		UserRepo: userRepo,
		Denylist: auth.NewTokenDenylist(nil),
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, token, exp, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	logged, token2, _, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token2)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Other", "alice@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "right")
	require.NoError(t, err)

	// unknown email and wrong password fail identically
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "right")
	require.Error(t, err)
	unknownEmail := apperrors.ToDomainError(err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	wrongPassword := apperrors.ToDomainError(err)

	assert.Equal(t, "UNAUTHORIZED", unknownEmail.Code)
	assert.Equal(t, unknownEmail.Message, wrongPassword.Message)
}

func TestUpdateProfile_PartialAndPasswordRehash(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Bob", "bob@example.com", "old-pw")
	require.NoError(t, err)
	oldHash := user.PasswordHash

	name := "Robert"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, oldHash, updated.PasswordHash)

	newPw := "new-pw"
	updated, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Password: &newPw})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, _, _, err = svc.Login(ctx, "bob@example.com", "new-pw")
	assert.NoError(t, err)
}

func TestUserResponseNeverCarriesPassword(t *testing.T) {
	svc := newTestAuthService(t)

	user, _, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "pw")
	require.NoError(t, err)

	body, err := json.Marshal(dto.NewUserResponse(user))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(body), "password"))
	assert.False(t, strings.Contains(string(body), user.PasswordHash))
}
