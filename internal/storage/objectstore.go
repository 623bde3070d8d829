package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStore is the persistence surface for uploaded files. Objects are
// write-once: uploading to an existing path fails instead of overwriting.
type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) error
	PublicURL(path string) string
	Bucket() string
}

// DiskStore keeps objects under root/bucket and serves them from a public
// base URL. It stands in for a hosted object store behind the same interface.
type DiskStore struct {
	root    string
	bucket  string
	baseURL string
}

func NewDiskStore(root, bucket, baseURL string) (*DiskStore, error) {
	if bucket == "" {
		return nil, errors.New("storage: bucket name required")
	}
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create bucket %q: %w", bucket, err)
	}
	return &DiskStore{root: root, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Bucket() string { return s.bucket }

func (s *DiskStore) Upload(ctx context.Context, path string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("storage: invalid object path %q", path)
	}

	full := filepath.Join(s.root, s.bucket, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage: bucket %q: %w", s.bucket, err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("storage: bucket %q: object %q already exists", s.bucket, path)
		}
		return fmt.Errorf("storage: bucket %q: %w", s.bucket, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return fmt.Errorf("storage: bucket %q: write failed: %w", s.bucket, err)
	}
	return nil
}

func (s *DiskStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/%s/%s", s.baseURL, s.bucket, path)
}
