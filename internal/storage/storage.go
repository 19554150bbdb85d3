package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Bucket stores uploaded images and hands back the URL they are served at.
type Bucket interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	PublicURL(path string) string
}

// ObjectPath names an upload as <namespace>/<unix-ms>.<ext>. The extension
// comes from the original filename and is lowercased; it is dropped when
// the filename has none.
func ObjectPath(namespace, filename string, now time.Time) string {
	name := fmt.Sprintf("%d", now.UnixMilli())
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && ext != "." {
		name += ext
	}
	namespace = strings.Trim(namespace, "/")
	if namespace == "" {
		return name
	}
	return namespace + "/" + name
}

// validPath rejects object names that could escape the bucket root.
func validPath(path string) error {
	if path == "" || strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid object name %q", path)
	}
	return nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + path
}
