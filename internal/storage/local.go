package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBucket writes uploads under a directory that the router serves at
// URLPrefix.
type LocalBucket struct {
	Dir       string
	URLPrefix string
}

func NewLocalBucket(dir, urlPrefix string) (*LocalBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalBucket{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (b *LocalBucket) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	if err := validPath(path); err != nil {
		return "", err
	}
	dst := filepath.Join(b.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return b.PublicURL(path), nil
}

func (b *LocalBucket) PublicURL(path string) string {
	return joinURL(b.URLPrefix, path)
}
