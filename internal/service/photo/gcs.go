package photo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/netwify/api/internal/platform/logging"
)

const objectPrefix = "profile-photos/"

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// GCSStore implements Service backed by a Cloud Storage bucket.
type GCSStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewGCSStore creates a new Cloud Storage photo store. The bucket name is
// passed separately because it is needed to build public URLs.
func NewGCSStore(bucket *storage.BucketHandle, bucketName string) *GCSStore {
	return &GCSStore{bucket: bucket, bucketName: bucketName}
}

func (s *GCSStore) objectName(userID string) string {
	return objectPrefix + userID
}

func (s *GCSStore) Upload(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	if s.bucket == nil {
		return "", ErrNotConfigured
	}
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := s.objectName(userID)
	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	// Read one byte past the limit so an exactly-at-limit upload still
	// succeeds.
	n, err := io.Copy(w, io.LimitReader(r, MaxSize+1))
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing photo object: %w", err)
	}
	if n > MaxSize {
		_ = w.Close()
		if delErr := s.bucket.Object(name).Delete(ctx); delErr != nil && !errors.Is(delErr, storage.ErrObjectNotExist) {
			logging.LogWarn(ctx, "failed to remove oversized photo object")
		}
		return "", ErrTooLarge
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing photo object: %w", err)
	}

	logging.LogAuditEvent(ctx, "photo.upload", userID, "photo", name, "success", map[string]any{
		"contentType": contentType,
		"bytes":       n,
	})

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, name), nil
}

func (s *GCSStore) Delete(ctx context.Context, userID string) error {
	if s.bucket == nil {
		return ErrNotConfigured
	}

	name := s.objectName(userID)
	if err := s.bucket.Object(name).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("deleting photo object: %w", err)
	}

	logging.LogAuditEvent(ctx, "photo.delete", userID, "photo", name, "success", nil)
	return nil
}

// Compile-time interface check
var _ Service = (*GCSStore)(nil)
