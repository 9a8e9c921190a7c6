package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/folio-cms/folio/internal/apperror"
)

// LocalURLPrefix is the URL path the web server serves the local root under.
const LocalURLPrefix = "/uploads"

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// Local keeps objects as files below Root/<bucket>/.
type Local struct {
	root    string
	baseURL string
	buckets Buckets
}

// NewLocal creates the root directory and returns a store serving URLs below baseURL.
func NewLocal(root, baseURL string, buckets Buckets) (*Local, error) {
	if root == "" {
		root = "./data/uploads"
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to ensure upload dir: %w", err)
	}

	return &Local{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		buckets: buckets,
	}, nil
}

// Root returns the directory objects are written to.
func (s *Local) Root() string {
	return s.root
}

// Put writes r to a temp file and renames it into place.
func (s *Local) Put(ctx context.Context, bucket, name string, r io.Reader, _ int64, _ string) (Object, error) {
	if err := s.buckets.Check(bucket); err != nil {
		return Object{}, err
	}

	if err := ctx.Err(); err != nil {
		return Object{}, apperror.Store(err)
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return Object{}, apperror.Store(err)
	}

	objName := ObjectName(name)

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return Object{}, apperror.Store(err)
	}

	tmpName := tmp.Name()

	if _, err = io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return Object{}, apperror.Store(err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return Object{}, apperror.Store(err)
	}

	if err = os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return Object{}, apperror.Store(err)
	}

	if err = os.Rename(tmpName, filepath.Join(dir, objName)); err != nil {
		_ = os.Remove(tmpName)
		return Object{}, apperror.Store(err)
	}

	return Object{
		Path: objName,
		URL:  s.baseURL + "/" + bucket + "/" + objName,
	}, nil
}

// Delete removes the file. A missing file is not an error.
func (s *Local) Delete(_ context.Context, bucket, path string) error {
	if err := s.buckets.Check(bucket); err != nil {
		return err
	}

	p, err := cleanPath(path)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, bucket, p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperror.Store(err)
	}

	return nil
}
