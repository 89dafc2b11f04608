// Package storage abstracts the object store holding livery images.
package storage

import (
	"context"
	"time"
)

const (
	// DetailURLTTL is how long presigned detail image URLs stay valid.
	DetailURLTTL = 24 * time.Hour
	// ThumbnailURLTTL is how long presigned feed thumbnail URLs stay
	// valid. Feed pages are re-fetched often, so these can be short.
	ThumbnailURLTTL = time.Hour
	// UploadURLTTL is how long a client has to complete a direct upload.
	UploadURLTTL = 15 * time.Minute
)

// ObjectStore issues presigned URLs for direct client access and removes
// objects when posts are deleted.
type ObjectStore interface {
	// PresignGet returns a time-limited URL for downloading key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PresignPut returns a time-limited URL a client can PUT an object to.
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	// DeleteMany removes objects. Missing keys are not an error.
	DeleteMany(ctx context.Context, keys []string) error
}
