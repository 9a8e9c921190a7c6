package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/config"
)

// S3 keeps objects in one S3 bucket; logical buckets become key prefixes.
type S3 struct {
	client    *s3.Client
	bucket    string
	prefix    string
	publicURL string
	buckets   Buckets
}

// NewS3 creates an S3 backed store.
func NewS3(ctx context.Context, cfg config.S3Storage, buckets Buckets) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: %w", ErrBucketEmpty)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		switch {
		case cfg.Endpoint != "":
			publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
		default:
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		buckets:   buckets,
	}, nil
}

// Put uploads r. A negative size lets the SDK buffer the body.
func (s *S3) Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) (Object, error) {
	if err := s.buckets.Check(bucket); err != nil {
		return Object{}, err
	}

	objName := ObjectName(name)
	k := key(s.prefix, bucket, objName)

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
		Body:   r,
	}

	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return Object{}, apperror.Store(fmt.Errorf("s3 put failed: %w", err))
	}

	return Object{Path: objName, URL: s.publicURL + "/" + k}, nil
}

// Delete removes the object. S3 does not report missing keys on delete.
func (s *S3) Delete(ctx context.Context, bucket, path string) error {
	if err := s.buckets.Check(bucket); err != nil {
		return err
	}

	p, err := cleanPath(path)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(s.prefix, bucket, p)),
	})
	if err != nil {
		return apperror.Store(fmt.Errorf("s3 delete failed for %s: %w", p, err))
	}

	return nil
}
