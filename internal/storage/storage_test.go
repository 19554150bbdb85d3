package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	tests := []struct {
		namespace string
		filename  string
		want      string
	}{
		{"profile", "me.JPG", "profile/1718000000123.jpg"},
		{"logos/company", "target.png", "logos/company/1718000000123.png"},
		{"projects/", "shot", "projects/1718000000123"},
		{"", "a.webp", "1718000000123.webp"},
	}
	for _, tt := range tests {
		t.Run(tt.namespace+"/"+tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectPath(tt.namespace, tt.filename, now))
		})
	}
}

func TestLocalBucketUpload(t *testing.T) {
	dir := t.TempDir()
	bucket, err := NewLocalBucket(dir, "/uploads")
	require.NoError(t, err)

	url, err := bucket.Upload(context.Background(), "projects/1.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/projects/1.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "projects", "1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestLocalBucketRejectsTraversal(t *testing.T) {
	bucket, err := NewLocalBucket(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, path := range []string{"../escape.png", "/abs.png", ""} {
		_, err := bucket.Upload(context.Background(), path, strings.NewReader("x"), 1, "image/png")
		assert.Error(t, err, path)
	}
}
