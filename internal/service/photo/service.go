// Package photo stores profile photos in Cloud Storage. One object per
// user, overwritten on every upload, publicly readable at a stable URL.
package photo

import (
	"context"
	"errors"
	"io"
)

// Service errors
var (
	ErrUnsupportedType = errors.New("unsupported image content type")
	ErrTooLarge        = errors.New("image exceeds the size limit")
	ErrNotConfigured   = errors.New("photo storage is not configured")
)

// MaxSize is the upload size limit in bytes.
const MaxSize = 5 << 20

// Service defines profile photo operations.
type Service interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, userID, contentType string, r io.Reader) (string, error)

	// Delete removes the stored photo. Deleting a photo that does not
	// exist is not an error.
	Delete(ctx context.Context, userID string) error
}
