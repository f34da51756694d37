package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// Sentinel errors returned by the user store.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserPatch carries a partial user update. Nil fields are left
// unchanged; UpdatedAt is refreshed regardless.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
}

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// fileUserRepository keeps the whole user collection in one JSON file.
// Every operation is a full read-modify-write cycle, so a single mutex
// serializes them; without it two concurrent writers would each load a
// stale collection and one write would be lost.
type fileUserRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileUserRepository returns a repository backed by the JSON file at
// path. The parent directory is created if missing.
func NewFileUserRepository(path string) (UserRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create user data dir: %w", err)
		}
	}
	return &fileUserRepository{path: path}, nil
}

func (r *fileUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return r.save(append(users, *user))
}

func (r *fileUserRepository) Update(_ context.Context, id string, patch UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUserNotFound
	}

	if patch.Email != nil && *patch.Email != users[idx].Email {
		for i := range users {
			if i != idx && users[i].Email == *patch.Email {
				return nil, ErrDuplicateEmail
			}
		}
		users[idx].Email = *patch.Email
	}
	if patch.Name != nil {
		users[idx].Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		users[idx].PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		users[idx].Role = *patch.Role
	}
	users[idx].UpdatedAt = time.Now().UTC()

	if err := r.save(users); err != nil {
		return nil, err
	}
	updated := users[idx]
	return &updated, nil
}

func (r *fileUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	filtered := users[:0:0]
	for i := range users {
		if users[i].ID != id {
			filtered = append(filtered, users[i])
		}
	}
	if len(filtered) == len(users) {
		return ErrUserNotFound
	}
	return r.save(filtered)
}

func (r *fileUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fileUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fileUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileUserRepository) load() ([]domain.User, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("read user table: %w", err)
	}
	if len(content) == 0 {
		return []domain.User{}, nil
	}
	var users []domain.User
	if err := json.Unmarshal(content, &users); err != nil {
		return nil, fmt.Errorf("decode user table: %w", err)
	}
	return users, nil
}

// save writes the full collection to a temp file and renames it into
// place, so readers observe either the old table or the new one.
func (r *fileUserRepository) save(users []domain.User) error {
	content, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user table: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write user table: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("swap user table: %w", err)
	}
	return nil
}
