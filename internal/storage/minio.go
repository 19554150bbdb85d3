package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/config"
)

// MinioBucket keeps uploads in one MinIO/S3 bucket.
type MinioBucket struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioBucket connects to MinIO and creates the bucket if it does not
// exist yet.
func NewMinioBucket(ctx context.Context, cfg config.MinIOConfig) (*MinioBucket, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created bucket")
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}

	return &MinioBucket{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (b *MinioBucket) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	if err := validPath(path); err != nil {
		return "", err
	}
	_, err := b.client.PutObject(ctx, b.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return b.PublicURL(path), nil
}

func (b *MinioBucket) PublicURL(path string) string {
	return joinURL(b.publicURL, path)
}
