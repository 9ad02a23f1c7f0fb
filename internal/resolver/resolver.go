package resolver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teamforge/profile-extractor/internal/blobstore"
	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/entity"
	"github.com/teamforge/profile-extractor/internal/repository"
)

// Resolver obtains a readable byte stream for a stored document reference.
// References can point at stale or foreign locations; every successful
// resolution after a fallback re-uploads the bytes to the canonical bucket
// and repoints the reference, so the next resolution takes the signed-URL
// path again.
type Resolver struct {
	blob   blobstore.BlobStore
	docs   repository.DocumentReferenceRepository
	client *http.Client
	bucket string // canonical bucket for healed uploads
	logger *slog.Logger
}

func NewResolver(blob blobstore.BlobStore, docs repository.DocumentReferenceRepository, canonicalBucket string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		blob:   blob,
		docs:   docs,
		client: &http.Client{Timeout: 30 * time.Second},
		bucket: canonicalBucket,
		logger: logger,
	}
}

// Resolve returns the document bytes for ref, or a MALFORMED_REFERENCE /
// FILE_UNREACHABLE error.
func (r *Resolver) Resolve(ctx context.Context, ref *entity.DocumentReference) ([]byte, error) {
	bucket, objPath, err := ParseLocator(ref.StorageLocator)
	if err != nil {
		r.logger.Error("resolver.malformed_locator", "owner_id", ref.OwnerID, "locator", ref.StorageLocator, "error", err)
		return nil, common.NewPipelineError(common.KindMalformedReference,
			"storage locator cannot be decomposed into bucket and path", err)
	}

	// Primary path: short-lived signed read URL against the parsed location.
	signedURL, signErr := r.blob.SignedReadURL(ctx, bucket, objPath)
	if signErr == nil {
		data, fetchErr := r.fetch(ctx, signedURL)
		if fetchErr == nil {
			r.logger.Debug("resolver.signed_fetch_ok", "owner_id", ref.OwnerID, "bytes", len(data))
			return data, nil
		}
		signErr = fetchErr
	}
	r.logger.Warn("resolver.signed_path_failed", "owner_id", ref.OwnerID, "error", signErr)

	// Fallback: fetch the locator verbatim. Handles externally-hosted links
	// and references predating the canonical bucket.
	if !isHTTPURL(ref.StorageLocator) {
		return nil, common.NewPipelineError(common.KindUnreachable,
			"all read strategies exhausted", signErr)
	}
	data, err := r.fetch(ctx, ref.StorageLocator)
	if err != nil {
		r.logger.Error("resolver.direct_fetch_failed", "owner_id", ref.OwnerID, "error", err)
		return nil, common.NewPipelineError(common.KindUnreachable,
			"all read strategies exhausted", err)
	}

	r.heal(ctx, ref, data)
	return data, nil
}

// heal re-uploads directly-fetched bytes to the canonical bucket under a
// fresh collision-resistant path and repoints the reference. A heal failure
// is logged, not surfaced: the bytes were resolved, and the next invocation
// retries the repair.
func (r *Resolver) heal(ctx context.Context, ref *entity.DocumentReference, data []byte) {
	newPath := ref.OwnerID.String() + "/" + uuid.New().String() + strings.ToLower(path.Ext(ref.DisplayName))
	if err := r.blob.Upload(ctx, r.bucket, newPath, data); err != nil {
		r.logger.Error("resolver.heal_upload_failed", "owner_id", ref.OwnerID, "error", err)
		return
	}
	locator := r.bucket + "/" + newPath
	if err := r.docs.UpdateLocator(ctx, ref.OwnerID, locator); err != nil {
		r.logger.Error("resolver.heal_update_failed", "owner_id", ref.OwnerID, "error", err)
		return
	}
	ref.StorageLocator = locator
	r.logger.Info("resolver.healed", "owner_id", ref.OwnerID, "locator", locator)
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			r.logger.Warn("resolver.body_close_error", "error", cerr)
		}
	}()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ParseLocator decomposes a storage locator into bucket and object path.
// Accepted forms: "bucket/inner/path" and absolute URLs whose path carries
// the bucket as its first segment (storage-gateway URLs with an
// "/object/public/" prefix included).
func ParseLocator(locator string) (bucket, objPath string, err error) {
	s := strings.TrimSpace(locator)
	if isHTTPURL(s) {
		u, perr := url.Parse(s)
		if perr != nil {
			return "", "", perr
		}
		s = strings.TrimPrefix(u.Path, "/")
		if idx := strings.Index(s, "object/public/"); idx >= 0 {
			s = s[idx+len("object/public/"):]
		}
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("locator %q: want bucket/path", locator)
	}
	return parts[0], parts[1], nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
