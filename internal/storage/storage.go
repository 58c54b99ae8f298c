// Package storage provides the object-storage collaborator used for
// workout videos. Handlers depend on the Uploader interface; the S3
// implementation is injected at construction with explicit credentials,
// never through process-wide mutable client state.
package storage

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/google/uuid"
)

// MaxVideoSize is the upload payload ceiling.
const MaxVideoSize = 100 << 20 // 100 MiB

// videoKeyPrefix groups uploaded videos under one folder.
const videoKeyPrefix = "workout-videos"

// ErrUnsupportedType is returned for content types outside the allowed set.
var ErrUnsupportedType = errors.New("unsupported video content type")

// ErrTooLarge is returned for payloads over MaxVideoSize.
var ErrTooLarge = errors.New("video payload too large")

// Uploader stores workout videos and hands back durable references.
type Uploader interface {
	// Upload stores the payload and returns a publicly fetchable URL.
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
	// Delete removes a previously uploaded object by its URL.
	Delete(ctx context.Context, fileURL string) error
	// Presign returns a short-lived URL for a direct client PUT.
	Presign(ctx context.Context, filename, contentType string) (string, error)
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/avi":       true,
	"video/mov":       true,
	"video/quicktime": true,
}

// AllowedVideoType reports whether the content type may be uploaded.
func AllowedVideoType(contentType string) bool {
	return allowedVideoTypes[contentType]
}

// objectKey builds a collision-free key preserving the file extension.
func objectKey(filename string) string {
	return videoKeyPrefix + "/" + uuid.NewString() + path.Ext(filename)
}
