package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/config"
)

// GCS keeps objects in a Google Cloud Storage bucket.
type GCS struct {
	client    *storage.Client
	bucket    string
	prefix    string
	publicURL string
	buckets   Buckets
}

// NewGCS creates a GCS backed store using application default credentials.
func NewGCS(ctx context.Context, cfg config.GCSStorage, buckets Buckets) (*GCS, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs: %w", ErrBucketEmpty)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "https://storage.googleapis.com/" + cfg.Bucket
	}

	return &GCS{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		buckets:   buckets,
	}, nil
}

// Put streams r into the bucket under a fresh object name. GCS needs no size up front.
func (s *GCS) Put(ctx context.Context, bucket, name string, r io.Reader, _ int64, contentType string) (Object, error) {
	if err := s.buckets.Check(bucket); err != nil {
		return Object{}, err
	}

	objName := ObjectName(name)
	k := key(s.prefix, bucket, objName)

	w := s.client.Bucket(s.bucket).Object(k).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return Object{}, apperror.Store(fmt.Errorf("gcs write failed: %w", err))
	}

	if err := w.Close(); err != nil {
		return Object{}, apperror.Store(fmt.Errorf("gcs close failed: %w", err))
	}

	return Object{Path: objName, URL: s.publicURL + "/" + k}, nil
}

// Delete removes the object. A missing object is not an error.
func (s *GCS) Delete(ctx context.Context, bucket, path string) error {
	if err := s.buckets.Check(bucket); err != nil {
		return err
	}

	p, err := cleanPath(path)
	if err != nil {
		return err
	}

	err = s.client.Bucket(s.bucket).Object(key(s.prefix, bucket, p)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return apperror.Store(fmt.Errorf("gcs delete failed for %s: %w", p, err))
	}

	return nil
}

// Close closes the GCS client.
func (s *GCS) Close() error {
	return s.client.Close()
}
