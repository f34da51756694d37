// Package storage persists uploaded complaint attachments as opaque
// named blobs on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// DefaultMaxUploadBytes is the upload ceiling applied when none is
// configured (5 MiB).
const DefaultMaxUploadBytes = 5 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".pdf":  {},
	".txt":  {},
	".doc":  {},
	".docx": {},
}

// LocalStore writes attachments under a single directory. Stored names
// are generated, never the client-supplied name.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// MaxBytes returns the configured size ceiling.
func (s *LocalStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates and persists one uploaded file, returning the stored
// filename. Size and extension are checked before any byte is written.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("attachment exceeds %d byte limit", s.maxBytes),
			map[string]any{"size": file.Size},
		)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(file.Filename)))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperrors.NewValidationError("attachment file type not allowed", map[string]any{"extension": ext})
	}

	name := uuid.NewString() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against a forged Content-Length.
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return name, nil
}

// Path resolves a stored filename to its on-disk path, rejecting names
// that try to escape the upload directory.
func (s *LocalStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", apperrors.NewValidationError("invalid attachment name", nil)
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFound("attachment", nil)
		}
		return "", fmt.Errorf("stat attachment: %w", err)
	}
	return path, nil
}
