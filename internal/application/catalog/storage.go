package catalog

import (
	"context"
	"time"
)

// ObjectStorageService is the port to the photo object store. The S3
// implementation hands out presigned URLs so photo bytes never pass
// through the API server.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for the given key,
	// along with the moment it expires.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for a stored object.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes a stored object.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object is present. Used to confirm
	// an upload actually happened before the photo row is created.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
