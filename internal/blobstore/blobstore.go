package blobstore

import "context"

// BlobStore is the narrow storage surface the pipeline depends on.
// Bucket and path are opaque strings; implementations own their meaning.
type BlobStore interface {
	// SignedReadURL returns a short-lived URL granting read access to the
	// object at bucket/path.
	SignedReadURL(ctx context.Context, bucket, path string) (string, error)
	// Upload writes data to bucket/path, replacing any existing object.
	Upload(ctx context.Context, bucket, path string, data []byte) error
	// PublicURL returns the stable, unauthenticated URL for bucket/path.
	PublicURL(bucket, path string) string
}
