// Package service contains the use-case layer: request-scoped orchestration of
// repositories, object storage and the external gateways. Services are
// stateless and safe for concurrent use.
package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"petcareapi/internal/storage"
)

// FileUpload carries one incoming file from the HTTP layer. The reader streams
// the request body part directly; nothing is spooled to disk.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// uploadImage stores an upload under dir with a generated name, keeping the
// original extension. Returns the storage key.
func uploadImage(ctx context.Context, store storage.Storage, dir string, f *FileUpload) (string, error) {
	if f == nil || f.Reader == nil {
		return "", fmt.Errorf("%w: image file is required", ErrValidation)
	}
	ext := filepath.Ext(f.Filename)
	key := path.Join(dir, uuid.New().String()+ext)

	if _, err := store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	}); err != nil {
		return "", fmt.Errorf("%w: upload image: %v", ErrUpstream, err)
	}
	return key, nil
}

// signedURL exchanges a storage key for a time-limited download URL. An empty
// key yields an empty URL, and a presign failure degrades to an empty URL
// rather than failing the read.
func signedURL(ctx context.Context, store storage.Storage, key string) string {
	if key == "" {
		return ""
	}
	u, err := store.PresignGet(ctx, key, storage.DefaultSignedURLTTL)
	if err != nil {
		return ""
	}
	return u
}
