package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/storage"
)

const MaxImageSize = 5 << 20

// sniffLen is how much of an upload is read to detect its real type.
const sniffLen = 3072

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// storedImageTypes maps a detected image type to the extension it is
// stored under. SVG is left out since it can carry script.
var storedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload is an image sent along with a save.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadFromFile opens a multipart file header. The caller closes the
// returned closer.
func UploadFromFile(fh *multipart.FileHeader) (*Upload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}
	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

func (u *Upload) validate() error {
	if !strings.HasPrefix(u.ContentType, "image/") {
		return domain.NewValidationError("image", "Please upload an image file")
	}
	if u.Size <= 0 {
		return domain.NewValidationError("image", "Image is empty")
	}
	if u.Size > MaxImageSize {
		return domain.NewValidationError("image", "Image must be smaller than 5 MB")
	}
	if !slices.Contains(allowedImageExtensions, strings.ToLower(filepath.Ext(u.Filename))) {
		return domain.NewValidationError("image", "Image must be a JPG, PNG, GIF or WebP file")
	}
	return nil
}

// sniff detects the image type from the leading bytes and returns it with
// the extension to store under. The bytes read are put back in front of
// Body.
func (u *Upload) sniff() (string, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(u.Body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head).String()
	ext, ok := storedImageTypes[detected]
	if !ok {
		return "", "", domain.NewValidationError("image", "File content is not a supported image")
	}
	u.Body = io.MultiReader(bytes.NewReader(head), u.Body)
	return detected, ext, nil
}

// storeImage validates and uploads u under namespace and returns its URL.
func storeImage(ctx context.Context, bucket storage.Bucket, namespace string, u *Upload, now time.Time) (string, error) {
	if err := u.validate(); err != nil {
		return "", err
	}
	contentType, ext, err := u.sniff()
	if err != nil {
		return "", err
	}
	if bucket == nil {
		return "", fmt.Errorf("no image storage configured")
	}
	url, err := bucket.Upload(ctx, storage.ObjectPath(namespace, "image"+ext, now), u.Body, u.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	metrics.UploadBytes.WithLabelValues(namespace).Add(float64(u.Size))
	return url, nil
}
