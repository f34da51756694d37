package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func newTestRepo(t *testing.T) UserRepository {
	t.Helper()
	repo, err := NewFileUserRepository(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	return repo
}

func TestFileUserRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)
}

func TestFileUserRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Name: "A", Email: "dup@example.com", PasswordHash: "h1"}))

	err := repo.Create(ctx, &domain.User{Name: "B", Email: "dup@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// the failed create must not have touched the table
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "A", users[0].Name)
}

func TestFileUserRepository_EmailLookupIsCaseSensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Name: "A", Email: "Case@example.com", PasswordHash: "h"}))

	_, err := repo.GetByEmail(ctx, "case@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFileUserRepository_PartialUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := &domain.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "old"}
	require.NoError(t, repo.Create(ctx, user))

	newName := "Robert"
	updated, err := repo.Update(ctx, user.ID, UserPatch{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Equal(t, "old", updated.PasswordHash)
	assert.True(t, !updated.UpdatedAt.Before(updated.CreatedAt))
	assert.True(t, updated.CreatedAt.Equal(user.CreatedAt))
}

func TestFileUserRepository_UpdateEmailConflict(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", PasswordHash: "h"}))
	b := &domain.User{Name: "B", Email: "b@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, b))

	taken := "a@example.com"
	_, err := repo.Update(ctx, b.ID, UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestFileUserRepository_UpdateMissing(t *testing.T) {
	repo := newTestRepo(t)
	name := "x"
	_, err := repo.Update(context.Background(), "no-such-id", UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFileUserRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := &domain.User{Name: "C", Email: "c@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrUserNotFound)
}

// Concurrent creates must all survive: each create is a whole-table
// read-modify-write, so without the store's mutex some of these rows
// would be silently lost.
func TestFileUserRepository_ConcurrentCreatesNoLostUpdates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, &domain.User{
				Name:         fmt.Sprintf("user-%d", i),
				Email:        fmt.Sprintf("user-%d@example.com", i),
				PasswordHash: "h",
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, n)

	for i := 0; i < n; i++ {
		_, err := repo.GetByEmail(ctx, fmt.Sprintf("user-%d@example.com", i))
		assert.NoError(t, err)
	}
}

func TestFileUserRepository_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()

	first, err := NewFileUserRepository(path)
	require.NoError(t, err)
	user := &domain.User{Name: "D", Email: "d@example.com", PasswordHash: "h"}
	require.NoError(t, first.Create(ctx, user))

	second, err := NewFileUserRepository(path)
	require.NoError(t, err)
	loaded, err := second.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "d@example.com", loaded.Email)
}
