package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// uploadHeader builds a real multipart.FileHeader out of an in-memory
// request, the same shape Fiber hands to the handler.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("attachment", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["attachment"][0]
}

func TestSave_GeneratesFreshName(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	name, err := store.Save(uploadHeader(t, "receipt.PDF", []byte("pdf bytes")))
	require.NoError(t, err)

	assert.NotEqual(t, "receipt.PDF", name)
	assert.True(t, strings.HasSuffix(name, ".pdf"), "stored name %q should keep a lowercased extension", name)

	path, err := store.Path(name)
	require.NoError(t, err)
	assert.Equal(t, name, filepath.Base(path))
}

func TestSave_RejectsOversized(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 16)
	require.NoError(t, err)

	_, err = store.Save(uploadHeader(t, "big.png", bytes.Repeat([]byte("x"), 17)))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// a file at the limit goes through
	name, err := store.Save(uploadHeader(t, "ok.png", bytes.Repeat([]byte("x"), 16)))
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestSave_RejectsUnknownExtension(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	for _, filename := range []string{"payload.exe", "script.sh", "noext"} {
		_, err := store.Save(uploadHeader(t, filename, []byte("data")))
		require.Error(t, err, "filename %q", filename)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
}

func TestPath_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	for _, name := range []string{"../users.json", "a/b.png", "..", ".hidden", ""} {
		_, err := store.Path(name)
		require.Error(t, err, "name %q", name)
	}
}

func TestPath_MissingBlob(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = store.Path("nonexistent.png")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
