// Package objectstore keeps uploaded files (images, PDFs) in a bucketed object store.
// The backend is chosen by config: local filesystem, S3 or Google Cloud Storage.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/config"
)

// DefaultBuckets are accepted when the config names none.
var DefaultBuckets = []string{"images", "documents"}

var (
	// ErrUnknownBucket is returned for a bucket that is not on the allow-list.
	ErrUnknownBucket = apperror.New(apperror.ErrValidation, "unknown bucket")
	// ErrInvalidPath is returned for an object path that escapes its bucket.
	ErrInvalidPath = apperror.New(apperror.ErrValidation, "invalid object path")
	// ErrUnknownBackend is returned by New for an unsupported storage backend.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrBucketEmpty is returned when a cloud backend has no bucket configured.
	ErrBucketEmpty = errors.New("storage bucket is empty")
)

// Object describes a stored file.
type Object struct {
	Path string `json:"path"` // bucket relative path, used for Delete
	URL  string `json:"url"`  // public URL
}

// Store is the contract every upload backend implements.
type Store interface {
	// Put stores r under a generated name in bucket. name is the client filename;
	// only its extension is kept.
	Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) (Object, error)
	// Delete removes the object at path in bucket. A missing object is not an error.
	Delete(ctx context.Context, bucket, path string) error
}

// New returns the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	buckets := NewBuckets(cfg.Buckets)

	switch strings.ToLower(cfg.Backend) {
	case "", config.StorageLocal:
		return NewLocal(cfg.Local.Root, LocalURLPrefix, buckets)
	case config.StorageS3:
		return NewS3(ctx, cfg.S3, buckets)
	case config.StorageGCS:
		return NewGCS(ctx, cfg.GCS, buckets)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// Buckets is the allow-list of logical bucket names.
type Buckets []string

// NewBuckets returns names, or DefaultBuckets when names is empty.
func NewBuckets(names []string) Buckets {
	if len(names) == 0 {
		return slices.Clone(DefaultBuckets)
	}

	return slices.Clone(names)
}

// Check returns ErrUnknownBucket unless bucket is on the list.
func (b Buckets) Check(bucket string) error {
	if bucket == "" || !slices.Contains(b, bucket) {
		return ErrUnknownBucket
	}

	return nil
}

// ObjectName returns a fresh uuid based name keeping the extension of filename.
func ObjectName(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if !validExt(ext) {
		ext = ""
	}

	return uuid.NewString() + ext
}

// key joins bucket and name below prefix.
func key(prefix, bucket, name string) string {
	return prefix + bucket + "/" + name
}

// cleanPath validates a bucket relative object path as returned by Put.
func cleanPath(p string) (string, error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.Contains(p, "/") || strings.Contains(p, "\\") || p == "." || p == ".." {
		return "", ErrInvalidPath
	}

	return p, nil
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 {
		return false
	}

	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}
